// Package contact implements the contact-form submission pipeline.
//
// A submission passes through these steps, in order:
//
//  1. honeypot check (the hidden "website" field must be empty)
//  2. field validation
//  3. client address derivation from forwarding headers
//  4. sanitization of every text field
//  5. rate limiting on the sender's e-mail and hashed address
//  6. lead insert (mandatory)
//  7. CRM upsert, recorded on the lead as its sync status (best effort)
//  8. owner notification e-mail (best effort)
//
// A rate-limited sender is not turned away before the insert. The lead is
// stored with is_suspicious set and the caller is told to try again later.
// CRM and e-mail failures are logged and never change the response.
//
// Raw client addresses are never stored or logged. Logs carry salted hashes
// of the address and of the sender's e-mail (see package idhash).
//
// Router mounts the pipeline as POST / behind an optional per-address flood
// guard. The business limit of three submissions per hour is enforced by
// SubmissionLimiter inside Service.Submit.
//
// The flood guard differs from the business limit in two ways. A request it
// refuses is answered with 429 before decoding and nothing is stored, so it
// only bounds abusive bursts. It keys on clientip.GetIP, which falls back to
// the connection's remote address, whereas Submit derives the address from
// forwarding headers only and uses "unknown" when none is present.
package contact
