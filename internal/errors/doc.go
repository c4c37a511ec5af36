// Package errors provides structured errors for the calamity-catalog project.
//
// Two error types live here:
//   - Error: a coded error with a message, an optional cause and metadata. Used for local
//     failures such as config validation, missing credentials or storage problems.
//   - Shape: the normalized record for a failed catalog call. It carries the HTTP status code,
//     a user-facing message, the server status text and the time the failure was observed.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("weapon not found")
//	err := errors.InvalidArgumentf("rarity %q is not a tier", value)
//
// Wrapping errors:
//
//	if err := store.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to persist credential")
//	}
//
// # Shapes
//
// The catalog client turns every transport failure and non-2xx response into a *Shape:
//
//	shape := errors.NewShape(http.StatusNotFound, "resource not found", "Not Found", now, nil)
//	shape.Code() // CodeNotFound
//	shape.Kind() // KindClient
//
// GetCode, GetMessage and the Is* helpers understand both types, so callers can write
//
//	if errors.IsNotFound(err) { ... }
//
// without caring which layer produced the error.
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("base_url", cfg.BaseURL, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
