package contracts

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// fixed report column order, kept stable since downstream viewers key on it
var ReportColumns = []string{
	"Distrito",
	"Município",
	"Palavra-Chave Encontrada",
	"Objeto do Contrato",
	"Entidade Contratante",
	"Adjudicatário",
	"Valor (€)",
	"Data do Contrato",
	"Publicação",
	"Link",
	"ID Contrato",
}

// the report uses ';' and a UTF-8 BOM so spreadsheet software opens it
// with the right encoding and column split
const ReportDelimiter = ';'

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

func recordRow(r Record) []string {
	price := ""
	if r.PriceValid {
		price = strconv.FormatFloat(r.Price, 'f', 2, 64)
	}
	return []string{
		r.District,
		r.Location,
		r.Keyword,
		r.Description,
		r.ContractingEntity,
		r.ContractedEntity,
		price,
		r.SigningDate,
		r.PublicationDate,
		r.Link,
		strconv.FormatInt(r.ID, 10),
	}
}

// WriteCSV renders the result set. any write error is returned immediately,
// there is no partial-success mode.
func WriteCSV(w io.Writer, records []Record) error {
	_, err := w.Write(utf8Bom)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	writer.Comma = ReportDelimiter

	err = writer.Write(ReportColumns)
	if err != nil {
		return err
	}
	for _, record := range records {
		err = writer.Write(recordRow(record))
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCSV writes the report file. failures here are fatal for the run,
// the caller is expected to abort.
func ExportCSV(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	err = WriteCSV(file, records)
	if err != nil {
		file.Close()
		return fmt.Errorf("write report: %w", err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
