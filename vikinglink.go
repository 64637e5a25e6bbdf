// Package vikinglink extracts structured download-link metadata from
// viking file hosting pages and manages the multi-host OxxFile link
// records built from those extractions. A single page is mined by three
// independent discovery strategies (explicit download affordances, known
// hosting-domain links, and an inline scan of the raw markup), merged
// under a first-strategy-wins deduplication rule.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, http/).
package vikinglink
