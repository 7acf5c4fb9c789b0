// Package leads persists contact form leads.
//
// Two Store implementations are provided: RESTStore talks to a PostgREST
// endpoint (such as a hosted Supabase project) with a service-role key, and
// PostgresStore writes directly through a pgx connection pool. Both create a
// lead once and afterwards only touch its CRM synchronisation columns.
//
// Values are stored as given. Callers are responsible for sanitising user
// input before it reaches Insert.
package leads
