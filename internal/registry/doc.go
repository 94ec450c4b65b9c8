// Package registry implements the registry's transaction engine: the
// multi-record workflows that register births and marriages, renew and
// transfer vehicle registrations, issue tickets, apply payments and
// compile driver abstracts.
//
// Every workflow runs inside one store transaction, so a failure at any
// step leaves the store exactly as it was. Numbered records (births,
// marriages, registrations, tickets) draw their numbers from the store's
// sequences table, which makes collisions impossible by construction.
//
// Interactive input that a workflow may need halfway through (details for
// a person seen for the first time, or a choice between people who share
// a name) is requested through a PersonSource supplied by the caller.
package registry
