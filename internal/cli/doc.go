// Package cli provides the voca command-line interface.
//
// The root command loads configuration (see package config), sets up
// logging, waits for the store to become reachable and applies the schema
// before any subcommand runs. Each subcommand then performs one use case
// through services.VocabService, so every invocation is a single scope:
// it either fully succeeds or leaves the store untouched.
//
// Commands:
//   - import <pattern...>   load word files (txt, csv, json, xml, yaml)
//   - export <path>         write stored pairs to a file
//   - list                  print stored rows
//   - update                set columns on matching rows
//   - update-word           change one word or one of its meanings
//   - delete                remove matching words and their meanings
//   - workbook <path>       generate a fill-in-the-blank sheet
//   - stats                 count words and meanings
//
// Conditions are given as repeated --where column=value flags. A value
// with commas (word_id=1,2,3) matches any of the listed values.
package cli
