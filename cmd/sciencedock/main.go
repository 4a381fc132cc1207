// Command sciencedock is the discovery entry point of the sciencedock
// container image.
//
// With no arguments it prints the JSON document of every bundled task. With a
// task identifier as the first argument it runs that task on the command line:
//
//	sciencedock                                  # list task documents
//	sciencedock concatenate --json               # one task's document
//	sciencedock concatenate --table1=a.csv --table2=b.csv --combined=out.csv
//	sciencedock catalog search "json table"      # search the bundled tasks
//
// Configuration is read from $SCIENCEDOCK_CONFIG or sciencedock.yaml; see
// package config. Logs go to stderr so stdout carries only documents and
// results.
package main

func main() {
	Execute()
}
