// Package feeds talks to the upstream Chicago civic data services.
//
// Two upstreams are covered: the City Clerk legislation API (matters,
// wrapped in a data envelope) and the open-data portal's Socrata resources
// (permits, licenses, meetings, inspections, violations; bare JSON arrays).
// The Client normalizes nothing: it returns raw records for the normalize
// package to interpret.
package feeds
