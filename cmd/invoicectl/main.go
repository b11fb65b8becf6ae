// invoicectl is the operations CLI for the invoice dashboard: schema
// migrations, data ingestion, deduplication, and sanity checks.
package main

func main() {
	Execute()
}
