// Package claims defines the claims carried by a wascap token and the
// semantic checks applied to them.
//
// The JSON layout is the wascap wire format:
//
//	{
//	  "jti": "...", "iat": 1700000000, "iss": "<account key>", "sub": "<module key>",
//	  "exp": 1800000000, "nbf": 1700000000,
//	  "wascap": {"name": "...", "hash": "...", "tags": [], "caps": [], "rev": 1, "ver": "1.0", "prov": false}
//	}
//
// Every failure is a *caperr.Error.
package claims
