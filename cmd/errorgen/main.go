package main

import (
	"log"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common/codegen/errorgen"
)

var (
	fileLocation = "./storages/error-codes.csv"
	templateFile = "./internal/common/codegen/errorgen/error_codes.tmpl"
	packageName  = "config"
	outputFile   = "./internal/config/error_codes.go"
)

func main() {
	if err := errorgen.GenerateErrorCodesFromCSV(
		templateFile,
		fileLocation,
		packageName,
		outputFile); err != nil {
		log.Fatal(err)
	}
	log.Printf("writing file: %s", outputFile)
}
