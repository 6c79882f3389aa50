package workbook

import (
	"errors"
	"fmt"

	"github.com/vfg2006/order-template-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Nomes das planilhas, na ordem em que aparecem no arquivo
const (
	OrdersSheet       = "Orders"
	DictionarySheet   = "Dictionary"
	ProductDataSheet  = "ProductData"
	CreatorDataSheet  = "CreatorData"
	ExampleSheet      = "ตัวอย่างการกรอก"
	InstructionsSheet = "คำอธิบาย"
)

// Linhas de dados provisionadas na planilha Orders (2 a 100)
const (
	FirstDataRow = 2
	LastDataRow  = 100
)

const (
	CommissionFromProduct = "จากสินค้า"
	CommissionFromCreator = "จากครีเอเตอร์"

	StatusCompleted  = "เสร็จสิ้น"
	StatusCancelled  = "ยกเลิก"
	StatusInProgress = "กำลังดำเนินการ"

	UnitCurrency = "บาท"
	UnitPercent  = "%"

	DateFormat = "dd/mm/yyyy"
)

var (
	StatusValues         = []string{StatusCompleted, StatusCancelled, StatusInProgress}
	UnitValues           = []string{UnitCurrency, UnitPercent}
	CommissionTypeValues = []string{CommissionFromProduct, CommissionFromCreator}
)

// Chaves das colunas da planilha Orders
const (
	ColOrderID        = "order_id"
	ColDate           = "date"
	ColPlatform       = "platform"
	ColCreator        = "creator"
	ColCommissionType = "commission_type"
	ColCustomer       = "customer"
	ColCampaign       = "campaign"
	ColStatus         = "status"
	ColProductName    = "product_name"
	ColCategory       = "category"
	ColSKU            = "sku"
	ColQuantity       = "quantity"
	ColUnitCost       = "unit_cost"
	ColUnitPrice      = "unit_price"
	ColExpenseName    = "expense_name"
	ColExpenseAmount  = "expense_amount"
	ColExpenseUnit    = "expense_unit"
	ColNotes          = "notes"
)

// Chaves das listas da planilha Dictionary
const (
	ListPlatforms       = "platforms"
	ListCreators        = "creators"
	ListProducts        = "products"
	ListStatus          = "status"
	ListUnits           = "units"
	ListCommissionTypes = "commission_types"
)

// Chaves das colunas das tabelas de consulta
const (
	FieldName           = "name"
	FieldCategory       = "category"
	FieldSKU            = "sku"
	FieldCostPrice      = "cost_price"
	FieldSuggestedPrice = "suggested_price"
	FieldCommissionRate = "commission_rate"
)

var ErrInvalidSchema = errors.New("esquema da planilha inválido")

// Column descreve uma coluna de planilha. List aponta para uma lista do
// Dictionary (validação por intervalo) e Lookup para uma fórmula de consulta.
type Column struct {
	Key    string
	Header string
	Width  float64
	List   string
	Lookup *Lookup
}

// Lookup busca o valor da coluna Key da mesma linha na primeira coluna de
// Table e devolve a coluna Field da linha encontrada, ou "" quando não encontra.
type Lookup struct {
	Table string
	Key   string
	Field string
}

// DictionaryList é uma coluna da planilha Dictionary, escrita a partir da linha 2
type DictionaryList struct {
	Key    string
	Values func(domain.ReferenceDataset) []string
}

// Options controla as partes opcionais do modelo
type Options struct {
	IncludeCommissionType bool
	IncludeCreatorData    bool
	IncludeExamples       bool
	IncludeInstructions   bool
}

func DefaultOptions() Options {
	return Options{
		IncludeCommissionType: true,
		IncludeCreatorData:    true,
		IncludeExamples:       true,
		IncludeInstructions:   true,
	}
}

// Schema é a definição declarativa do modelo: nada aqui depende de endereços fixos,
// a letra de cada coluna sai da sua posição na lista.
type Schema struct {
	Orders      []Column
	Dictionary  []DictionaryList
	ProductData []Column
	CreatorData []Column
}

func NewSchema(opts Options) Schema {
	orders := []Column{
		{Key: ColOrderID, Header: "Order ID", Width: 12},
		{Key: ColDate, Header: "วันที่", Width: 15},
		{Key: ColPlatform, Header: "Platform", Width: 12, List: ListPlatforms},
		{Key: ColCreator, Header: "Creator", Width: 15, List: ListCreators},
	}
	if opts.IncludeCommissionType {
		orders = append(orders, Column{Key: ColCommissionType, Header: "ประเภทค่าคอม", Width: 15, List: ListCommissionTypes})
	}
	orders = append(orders,
		Column{Key: ColCustomer, Header: "ลูกค้า"},
		Column{Key: ColCampaign, Header: "แคมเปญ"},
		Column{Key: ColStatus, Header: "สถานะ", List: ListStatus},
		Column{Key: ColProductName, Header: "ชื่อสินค้า", Width: 25, List: ListProducts},
		Column{Key: ColCategory, Header: "หมวดหมู่", Lookup: productLookup(FieldCategory)},
		Column{Key: ColSKU, Header: "รหัสสินค้า", Lookup: productLookup(FieldSKU)},
		Column{Key: ColQuantity, Header: "จำนวน"},
		Column{Key: ColUnitCost, Header: "ต้นทุนต่อชิ้น", Lookup: productLookup(FieldCostPrice)},
		Column{Key: ColUnitPrice, Header: "ราคาขายต่อชิ้น", Lookup: productLookup(FieldSuggestedPrice)},
		Column{Key: ColExpenseName, Header: "ค่าใช้จ่าย ชื่อ"},
		Column{Key: ColExpenseAmount, Header: "ค่าใช้จ่าย จำนวน"},
		Column{Key: ColExpenseUnit, Header: "ค่าใช้จ่าย หน่วย", List: ListUnits},
		Column{Key: ColNotes, Header: "หมายเหตุ"},
	)

	dictionary := []DictionaryList{
		{Key: ListPlatforms, Values: domain.ReferenceDataset.PlatformNames},
		{Key: ListCreators, Values: domain.ReferenceDataset.CreatorNames},
		{Key: ListProducts, Values: domain.ReferenceDataset.ProductNames},
		{Key: ListStatus, Values: fixedList(StatusValues)},
		{Key: ListUnits, Values: fixedList(UnitValues)},
	}
	if opts.IncludeCommissionType {
		dictionary = append(dictionary, DictionaryList{Key: ListCommissionTypes, Values: fixedList(CommissionTypeValues)})
	}

	return Schema{
		Orders:     orders,
		Dictionary: dictionary,
		ProductData: []Column{
			{Key: FieldName, Header: "ชื่อสินค้า"},
			{Key: FieldCategory, Header: "หมวดหมู่"},
			{Key: FieldSKU, Header: "รหัสสินค้า"},
			{Key: FieldCostPrice, Header: "ต้นทุนต่อชิ้น"},
			{Key: FieldSuggestedPrice, Header: "ราคาขายต่อชิ้น"},
			{Key: FieldCommissionRate, Header: "ค่าคอมสินค้า(%)"},
		},
		CreatorData: []Column{
			{Key: FieldName, Header: "ชื่อครีเอเตอร์"},
			{Key: FieldCommissionRate, Header: "ค่าคอมครีเอเตอร์(%)"},
		},
	}
}

func productLookup(field string) *Lookup {
	return &Lookup{Table: ProductDataSheet, Key: ColProductName, Field: field}
}

func fixedList(values []string) func(domain.ReferenceDataset) []string {
	return func(domain.ReferenceDataset) []string {
		return append([]string(nil), values...)
	}
}

// Validate garante que toda validação e fórmula aponta para algo que existe no arquivo
func (s Schema) Validate() error {
	for _, col := range s.Orders {
		if col.List != "" && s.dictionaryIndex(col.List) < 0 {
			return fmt.Errorf("%w: coluna %q usa a lista desconhecida %q", ErrInvalidSchema, col.Key, col.List)
		}
		if col.Lookup == nil {
			continue
		}
		if col.Lookup.Table != ProductDataSheet {
			return fmt.Errorf("%w: coluna %q usa a tabela desconhecida %q", ErrInvalidSchema, col.Key, col.Lookup.Table)
		}
		if columnIndex(s.ProductData, col.Lookup.Field) < 1 {
			return fmt.Errorf("%w: coluna %q consulta o campo desconhecido %q", ErrInvalidSchema, col.Key, col.Lookup.Field)
		}
		if columnIndex(s.Orders, col.Lookup.Key) < 0 {
			return fmt.Errorf("%w: coluna %q depende da coluna desconhecida %q", ErrInvalidSchema, col.Key, col.Lookup.Key)
		}
	}
	return nil
}

// ColumnName devolve a letra da coluna de Orders com a chave informada
func (s Schema) ColumnName(key string) (string, bool) {
	i := columnIndex(s.Orders, key)
	if i < 0 {
		return "", false
	}
	return columnName(i), true
}

// DictionaryRange devolve o intervalo absoluto de uma lista, ex.: Dictionary!$A$2:$A$100
func (s Schema) DictionaryRange(list string) string {
	col := columnName(s.dictionaryIndex(list))
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", DictionarySheet, col, FirstDataRow, col, LastDataRow)
}

// LookupFormula monta a fórmula de consulta da linha informada, ex.:
// IF(I2="","",IFERROR(VLOOKUP(I2,ProductData!$A:$F,2,FALSE),""))
// Linha sem produto resulta em texto vazio, nunca em 0.
func (s Schema) LookupFormula(lookup *Lookup, row int) string {
	key := fmt.Sprintf("%s%d", columnName(columnIndex(s.Orders, lookup.Key)), row)
	first := columnName(0)
	last := columnName(len(s.ProductData) - 1)
	return fmt.Sprintf(`IF(%s="","",IFERROR(VLOOKUP(%s,%s!$%s:$%s,%d,FALSE),""))`,
		key, key, lookup.Table, first, last, columnIndex(s.ProductData, lookup.Field)+1)
}

func (s Schema) dictionaryIndex(list string) int {
	for i, l := range s.Dictionary {
		if l.Key == list {
			return i
		}
	}
	return -1
}

func columnIndex(columns []Column, key string) int {
	for i, c := range columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// columnName converte um índice (base 0) para a letra da coluna: A, B, ... Z, AA
func columnName(i int) string {
	name, _ := excelize.ColumnNumberToName(i + 1)
	return name
}

func headers(columns []Column) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c.Header
	}
	return row
}

// project ordena os valores de uma linha conforme as colunas
func project(columns []Column, values map[string]interface{}) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = values[c.Key]
	}
	return row
}
