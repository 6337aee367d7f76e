// Package sdk is the Go client for the UMKM AI backend HTTP API.
//
// A Client talks to a running backend instance; it does not embed the
// pipeline. Typical use:
//
//	client := sdk.New("http://localhost:8000")
//	resp, err := client.LegalQuery(ctx, "Apa syarat izin PIRT?")
package sdk
