// Package reportingservice implements marketplace reporting inside Mercato.
//
// Reporting is a pure read-side collaborator: its only dependency on the
// trading core is the engine's Snapshot port, which carries no mutation
// methods. Reports are computed on demand from committed state.
package reportingservice
