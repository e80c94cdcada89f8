// Package options turns the raw binlink configuration block into resolved
// Options.
//
// The block is whatever the host build tool stores under its extra section,
// already decoded into plain maps, slices and scalars. Resolution applies the
// defaults (from-dir "app", to-dir "bin", no filemode), honours the from/to
// aliases for the base directories, and normalizes every accepted shape of
// the links value into an ordered []LinkSpec:
//
//	links = "run.sh"                                  # bare string
//	links = ["run.sh", "tools"]                       # list of strings
//	links = { "run.sh" = "run" }                      # from -> to map
//	links = [{ from = "run.sh", filemode = "0755" }]  # records
//
// A block without links is the only configuration error the resolver raises
// on its own; everything else it reports is a malformed value.
package options
