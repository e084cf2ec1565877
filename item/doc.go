// Package item provides the data model flowing through pipelines: a
// generic ownership wrapper around one payload value plus an ordered,
// typed metadata collection (identifiers, status records, provenance).
package item
