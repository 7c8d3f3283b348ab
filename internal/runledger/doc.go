// Package runledger keeps a SQLite history of batch outcomes.
//
// Every driver invocation gets a run ID, and every (observation, filter)
// pair it touches is recorded with its outcome: processed, skipped for a
// missing template, no images found, or failed. The ledger is append-only
// bookkeeping: the authoritative fit state lives in the per-pair parameter
// files, but the ledger answers "what did last night's session actually do"
// without scrolling logs.
package runledger
