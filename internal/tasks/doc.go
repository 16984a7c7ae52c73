// Package tasks runs long list operations with real-time progress reporting.
//
// # Bulk export
//
// [Exporter.BulkExport] writes many lists to disk concurrently:
//
//   - list ids are fetched from a [ListSource] at a bounded rate
//   - a fixed pool of workers renders each list in the requested format (json, csv, markdown or txt)
//   - failures are recorded per list and never abort the run
//   - an export_manifest.json summarizing every result is written last
//
// # Progress Reporting
//
// Operations take an optional channel of [ProgressUpdate]. Sends never block: when the
// channel is full the update is dropped.
package tasks
