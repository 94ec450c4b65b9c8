// Package harness runs scripted operator sessions against a fresh registry.
//
// A scenario feeds input lines to the real session loop over an in-memory
// store, then checks the transcript and the resulting tables.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: bill_of_sale
//	description: "Agent transfers vehicle 230 to a new owner"
//	today: "2024-06-01"
//	seed: true                    # load the embedded demonstration seed
//	seed_file: extra.cue          # or a seed file, relative to the scenario
//	input:
//	  - y
//	  - jwick
//	  - password
//	  - c
//	  ...
//	assertions:
//	  - type: output_contains
//	    text: "Bill of sale processed"
//	  - type: output_not_contains
//	    text: "Error ["
//	  - type: row_count
//	    table: registrations
//	    where: { vin: "230" }
//	    count: 3
//
// row_count tables are the listing tables of the registry package and its
// where clause is a set of equality filters over their fields.
//
// # Determinism
//
// Each run opens its own ":memory:" database, pins the clock to the
// scenario's today and generates person ids sequentially, so transcripts
// are stable enough for golden comparison (see RunWithGolden).
package harness
