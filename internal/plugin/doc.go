// Package plugin is the contract between the lint host and its checkers.
//
// A Plugin declares its options, receives their parsed values exactly once
// per process (Registry.Configure) and then creates one Checker per file.
// Checkers return lazy diagnostic sequences and never fail: unreadable input
// simply yields nothing.
//
// Option registration goes through RegisterOptions, which probes the host
// for the preferred OptionRegistrar hook and only falls back to the older
// LegacyOptionParser shape when the preferred hook is missing.
package plugin
