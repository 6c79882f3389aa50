// Package workbook monta o modelo de pedidos (.xlsx) a partir dos dados de referência do usuário.
package workbook

import (
	"fmt"
	"time"

	"github.com/vfg2006/order-template-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	validationErrorTitle   = "ข้อมูลไม่ถูกต้อง"
	validationErrorMessage = "กรุณาเลือกค่าจากรายการที่กำหนดเท่านั้น"
)

// Assembler gera o arquivo do modelo. Não guarda estado entre chamadas.
type Assembler struct {
	opts   Options
	schema Schema
}

func NewAssembler(opts Options) *Assembler {
	return &Assembler{
		opts:   opts,
		schema: NewSchema(opts),
	}
}

func (a *Assembler) Schema() Schema {
	return a.schema
}

// Sheets devolve os nomes das planilhas geradas, na ordem do arquivo
func (a *Assembler) Sheets() []string {
	sheets := []string{OrdersSheet, DictionarySheet, ProductDataSheet}
	if a.opts.IncludeCreatorData {
		sheets = append(sheets, CreatorDataSheet)
	}
	if a.opts.IncludeExamples {
		sheets = append(sheets, ExampleSheet)
	}
	if a.opts.IncludeInstructions {
		sheets = append(sheets, InstructionsSheet)
	}
	return sheets
}

// Build monta o arquivo em memória. today preenche a data padrão da primeira linha
// e as datas dos exemplos. O chamador deve fechar o arquivo retornado.
func (a *Assembler) Build(ds domain.ReferenceDataset, today time.Time) (*excelize.File, error) {
	if err := a.schema.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		f:      excelize.NewFile(),
		schema: a.schema,
		opts:   a.opts,
		ds:     ds,
		today:  today,
	}

	steps := []func() error{
		b.ordersSheet,
		b.dictionarySheet,
		b.productDataSheet,
	}
	if a.opts.IncludeCreatorData {
		steps = append(steps, b.creatorDataSheet)
	}
	if a.opts.IncludeExamples {
		steps = append(steps, b.exampleSheet)
	}
	if a.opts.IncludeInstructions {
		steps = append(steps, b.instructionsSheet)
	}

	for _, step := range steps {
		if err := step(); err != nil {
			b.f.Close()
			return nil, err
		}
	}

	b.f.SetActiveSheet(0)
	return b.f, nil
}

type builder struct {
	f      *excelize.File
	schema Schema
	opts   Options
	ds     domain.ReferenceDataset
	today  time.Time

	headerStyle int
	dateStyle   int
}

func (b *builder) ordersSheet() error {
	if err := b.f.SetSheetName(b.f.GetSheetName(0), OrdersSheet); err != nil {
		return fmt.Errorf("erro ao renomear a planilha padrão: %w", err)
	}
	if err := b.createStyles(); err != nil {
		return err
	}
	if err := b.writeHeader(OrdersSheet, b.schema.Orders); err != nil {
		return err
	}

	for i, col := range b.schema.Orders {
		name := columnName(i)

		if col.List != "" {
			dv := excelize.NewDataValidation(true)
			dv.Sqref = fmt.Sprintf("%s%d:%s%d", name, FirstDataRow, name, LastDataRow)
			dv.SetSqrefDropList(b.schema.DictionaryRange(col.List))
			dv.SetError(excelize.DataValidationErrorStyleStop, validationErrorTitle, validationErrorMessage)
			if err := b.f.AddDataValidation(OrdersSheet, dv); err != nil {
				return fmt.Errorf("erro ao adicionar validação na coluna %s: %w", col.Key, err)
			}
		}

		if col.Lookup != nil {
			for row := FirstDataRow; row <= LastDataRow; row++ {
				cell := fmt.Sprintf("%s%d", name, row)
				if err := b.f.SetCellFormula(OrdersSheet, cell, b.schema.LookupFormula(col.Lookup, row)); err != nil {
					return fmt.Errorf("erro ao definir a fórmula em %s: %w", cell, err)
				}
			}
		}
	}

	// Valores padrão da primeira linha de dados
	dateCol, _ := b.schema.ColumnName(ColDate)
	dateCell := fmt.Sprintf("%s%d", dateCol, FirstDataRow)
	if err := b.f.SetCellValue(OrdersSheet, dateCell, b.today); err != nil {
		return fmt.Errorf("erro ao definir a data padrão: %w", err)
	}
	if err := b.f.SetCellStyle(OrdersSheet, dateCell, dateCell, b.dateStyle); err != nil {
		return fmt.Errorf("erro ao aplicar o estilo de data: %w", err)
	}

	if col, ok := b.schema.ColumnName(ColCommissionType); ok {
		cell := fmt.Sprintf("%s%d", col, FirstDataRow)
		if err := b.f.SetCellValue(OrdersSheet, cell, CommissionFromProduct); err != nil {
			return fmt.Errorf("erro ao definir o tipo de comissão padrão: %w", err)
		}
	}

	return b.freezeHeader(OrdersSheet)
}

// dictionarySheet escreve cada lista controlada em uma coluna, a partir da linha 2.
// A linha 1 fica vazia.
func (b *builder) dictionarySheet() error {
	if _, err := b.f.NewSheet(DictionarySheet); err != nil {
		return fmt.Errorf("erro ao criar a planilha Dictionary: %w", err)
	}

	for i, list := range b.schema.Dictionary {
		col := columnName(i)
		for j, value := range list.Values(b.ds) {
			cell := fmt.Sprintf("%s%d", col, FirstDataRow+j)
			if err := b.f.SetCellValue(DictionarySheet, cell, value); err != nil {
				return fmt.Errorf("erro ao escrever a lista %s no Dictionary: %w", list.Key, err)
			}
		}
	}

	if err := b.f.SetSheetVisible(DictionarySheet, false); err != nil {
		return fmt.Errorf("erro ao ocultar a planilha Dictionary: %w", err)
	}
	return nil
}

func (b *builder) productDataSheet() error {
	rows := make([][]interface{}, 0, len(b.ds.Products))
	for _, p := range b.ds.Products {
		rows = append(rows, project(b.schema.ProductData, map[string]interface{}{
			FieldName:           p.Name,
			FieldCategory:       p.Category,
			FieldSKU:            p.SKU,
			FieldCostPrice:      p.CostPrice,
			FieldSuggestedPrice: p.SuggestedPrice,
			FieldCommissionRate: p.Rate(),
		}))
	}
	return b.tableSheet(ProductDataSheet, b.schema.ProductData, rows)
}

func (b *builder) creatorDataSheet() error {
	rows := make([][]interface{}, 0, len(b.ds.Creators))
	for _, c := range b.ds.Creators {
		rows = append(rows, project(b.schema.CreatorData, map[string]interface{}{
			FieldName:           c.Name,
			FieldCommissionRate: c.Rate(),
		}))
	}
	return b.tableSheet(CreatorDataSheet, b.schema.CreatorData, rows)
}

// tableSheet cria uma tabela simples: cabeçalho na linha 1 e uma linha por registro
func (b *builder) tableSheet(sheet string, columns []Column, rows [][]interface{}) error {
	if _, err := b.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("erro ao criar a planilha %s: %w", sheet, err)
	}
	if err := b.writeHeader(sheet, columns); err != nil {
		return err
	}
	for i, row := range rows {
		row := row
		cell := fmt.Sprintf("A%d", i+2)
		if err := b.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("erro ao escrever a linha %[2]d de %[1]s: %[3]w", sheet, i+2, err)
		}
	}
	return nil
}

func (b *builder) exampleSheet() error {
	examples := exampleRows(b.ds, b.today)
	rows := make([][]interface{}, 0, len(examples))
	for _, e := range examples {
		rows = append(rows, project(b.schema.Orders, e))
	}
	if err := b.tableSheet(ExampleSheet, b.schema.Orders, rows); err != nil {
		return err
	}

	dateCol, _ := b.schema.ColumnName(ColDate)
	first := fmt.Sprintf("%s%d", dateCol, FirstDataRow)
	last := fmt.Sprintf("%s%d", dateCol, len(rows)+1)
	if err := b.f.SetCellStyle(ExampleSheet, first, last, b.dateStyle); err != nil {
		return fmt.Errorf("erro ao aplicar o estilo de data nos exemplos: %w", err)
	}

	return b.freezeHeader(ExampleSheet)
}

func (b *builder) instructionsSheet() error {
	if _, err := b.f.NewSheet(InstructionsSheet); err != nil {
		return fmt.Errorf("erro ao criar a planilha de instruções: %w", err)
	}
	for i, line := range instructionLines(b.opts) {
		cell := fmt.Sprintf("A%d", i+1)
		if err := b.f.SetCellValue(InstructionsSheet, cell, line); err != nil {
			return fmt.Errorf("erro ao escrever a linha %d das instruções: %w", i+1, err)
		}
	}
	return b.f.SetColWidth(InstructionsSheet, "A", "A", 70)
}

func (b *builder) createStyles() error {
	var err error
	b.headerStyle, err = b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("erro ao criar o estilo do cabeçalho: %w", err)
	}

	dateFormat := DateFormat
	b.dateStyle, err = b.f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return fmt.Errorf("erro ao criar o estilo de data: %w", err)
	}
	return nil
}

func (b *builder) writeHeader(sheet string, columns []Column) error {
	row := headers(columns)
	if err := b.f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("erro ao escrever o cabeçalho de %s: %w", sheet, err)
	}
	last := columnName(len(columns) - 1)
	if err := b.f.SetCellStyle(sheet, "A1", last+"1", b.headerStyle); err != nil {
		return fmt.Errorf("erro ao aplicar o estilo no cabeçalho de %s: %w", sheet, err)
	}
	for i, col := range columns {
		if col.Width == 0 {
			continue
		}
		name := columnName(i)
		if err := b.f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return fmt.Errorf("erro ao definir a largura de %s na coluna %s: %w", sheet, name, err)
		}
	}
	return nil
}

func (b *builder) freezeHeader(sheet string) error {
	return b.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
