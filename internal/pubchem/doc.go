// Package pubchem is a minimal client for PubChem's PUG REST property
// endpoint. Each call looks up exactly one property of one compound:
//
//	GET {base}/compound/name/{compound}/property/{property}/JSON
//
// and extracts PropertyTable.Properties[0][property] from the response.
//
// Errors are split so callers can tell the two failure classes apart:
// *StatusError for a non-200 response (PubChem's Fault message attached when
// present), and ErrNotFound for a 200 response that does not carry the value.
// Transport errors are returned wrapped.
//
// The shared *http.Client is built once by New from config.PubChemConfig;
// a userAgentRoundTripper stamps every request, and an optional fixed
// request interval paces consecutive calls.
package pubchem
