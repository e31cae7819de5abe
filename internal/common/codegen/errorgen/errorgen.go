package errorgen

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/iancoleman/strcase"
)

type (
	ErrorGen struct {
		Package    string
		ErrorCodes []ErrorCode
	}

	ErrorCode struct {
		Key      string
		Code     string
		Severity string
		Message  string
	}
)

// ParseErrorCodes reads "code,severity,message" rows; the first row is the header.
func ParseErrorCodes(r io.Reader) ([]ErrorCode, error) {
	csvLines, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read error codes csv: %w", err)
	}

	var (
		isExistErrorCode = make(map[string]bool)
		codes            []ErrorCode
	)
	for i := 1; i < len(csvLines); i++ {
		if len(csvLines[i]) < 3 {
			return nil, fmt.Errorf("line %d: expected 3 columns, got %d", i+1, len(csvLines[i]))
		}

		code := strings.TrimSpace(csvLines[i][0])
		if code == "" {
			return nil, fmt.Errorf("line %d: empty error code", i+1)
		}
		if isExistErrorCode[code] {
			return nil, fmt.Errorf("line %d: duplicate error code %s", i+1, code)
		}
		isExistErrorCode[code] = true

		codes = append(codes, ErrorCode{
			Key:      "ErrCode" + strcase.ToCamel(strings.ToLower(code)),
			Code:     code,
			Severity: strings.TrimSpace(csvLines[i][1]),
			Message:  strings.TrimSpace(csvLines[i][2]),
		})
	}

	return codes, nil
}

// Render executes the template and gofmt's the result.
func Render(tmpl *template.Template, templateName string, data ErrorGen) ([]byte, error) {
	var processed bytes.Buffer
	if err := tmpl.ExecuteTemplate(&processed, templateName, data); err != nil {
		return nil, fmt.Errorf("unable to parse data into template: %w", err)
	}

	formatted, err := format.Source(processed.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not format processed template: %w", err)
	}

	return formatted, nil
}

func GenerateErrorCodesFromCSV(
	templateFile,
	fileLocation,
	packageName,
	outputFile string,
) error {
	csvFile, err := os.Open(fileLocation)
	if err != nil {
		return err
	}
	defer csvFile.Close()

	codes, err := ParseErrorCodes(csvFile)
	if err != nil {
		return err
	}

	tmpl, err := template.New("").Funcs(sprig.TxtFuncMap()).ParseFiles(templateFile)
	if err != nil {
		return fmt.Errorf("unable to parse template: %w", err)
	}

	formatted, err := Render(tmpl, filepath.Base(templateFile), ErrorGen{
		Package:    packageName,
		ErrorCodes: codes,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, formatted, 0o644)
}
