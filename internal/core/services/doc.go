// Package services implements the driving ports: the ingestion pipeline,
// pack verification and search. Services depend only on domain types and
// driven ports; adapters are injected by the caller.
package services
