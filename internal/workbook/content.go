package workbook

import (
	"fmt"
	"time"

	"github.com/vfg2006/order-template-api/internal/domain"
)

// Valores usados nos exemplos quando o usuário ainda não tem dados cadastrados
const (
	fallbackPlatform = "TikTok"
	fallbackCreator  = "ขายเอง"
)

var fallbackProducts = []domain.Product{
	{Name: "สินค้า A", Category: "หมวดหมู่ A", SKU: "SKU001", CostPrice: 100, SuggestedPrice: 200},
	{Name: "สินค้า B", Category: "หมวดหมู่ B", SKU: "SKU002", CostPrice: 150, SuggestedPrice: 300},
	{Name: "สินค้า C", Category: "หมวดหมู่ C", SKU: "SKU003", CostPrice: 200, SuggestedPrice: 400},
}

type exampleRow map[string]interface{}

// exampleRows monta os pedidos de exemplo. Um pedido com vários itens ou despesas
// ocupa várias linhas com o mesmo Order ID; só a primeira leva os campos do pedido.
func exampleRows(ds domain.ReferenceDataset, today time.Time) []exampleRow {
	platform := fallbackPlatform
	if len(ds.Platforms) > 0 && ds.Platforms[0].Name != "" {
		platform = ds.Platforms[0].Name
	}
	creator := fallbackCreator
	if len(ds.Creators) > 0 && ds.Creators[0].Name != "" {
		creator = ds.Creators[0].Name
	}
	p0, p1, p2 := exampleProduct(ds, 0), exampleProduct(ds, 1), exampleProduct(ds, 2)

	order := func(id, commissionType, customer, campaign string) exampleRow {
		return exampleRow{
			ColOrderID:        id,
			ColDate:           today,
			ColPlatform:       platform,
			ColCreator:        creator,
			ColCommissionType: commissionType,
			ColCustomer:       customer,
			ColCampaign:       campaign,
			ColStatus:         StatusCompleted,
		}
	}
	continuation := func(id string) exampleRow {
		return exampleRow{ColOrderID: id}
	}

	return []exampleRow{
		order("ORDER001", CommissionFromProduct, "ลูกค้า A", "แคมเปญ X").
			item(p0, 10).expense("ค่าขนส่ง", 50, UnitCurrency).note("สินค้าเดียว ค่าใช้จ่ายเดียว"),

		order("ORDER002", CommissionFromCreator, "ลูกค้า B", "แคมเปญ Y").
			item(p0, 5).expense("ค่าขนส่ง", 100, UnitCurrency).note("สินค้าหลายรายการ ค่าใช้จ่ายเดียว"),
		continuation("ORDER002").
			item(p1, 3).note("สินค้าที่ 2 ในออเดอร์เดียวกัน"),

		order("ORDER003", CommissionFromProduct, "ลูกค้า C", "แคมเปญ Z").
			item(p0, 8).expense("ค่าขนส่ง", 80, UnitCurrency).note("สินค้าเดียว ค่าใช้จ่ายหลายรายการ"),
		continuation("ORDER003").
			expense("ค่าธรรมเนียม", 30, UnitCurrency).note("ค่าใช้จ่ายรายการที่ 2"),
		continuation("ORDER003").
			expense("ค่าโฆษณา", 5, UnitPercent).note("ค่าใช้จ่ายรายการที่ 3 (เป็น %)"),

		order("ORDER004", CommissionFromCreator, "ลูกค้า D", "แคมเปญ W").
			item(p0, 12).expense("ค่าขนส่ง", 120, UnitCurrency).note("สินค้าหลายรายการ ค่าใช้จ่ายหลายรายการ"),
		continuation("ORDER004").
			item(p1, 6).expense("ค่าบรรจุภัณฑ์", 50, UnitCurrency).note("สินค้าที่ 2 + ค่าใช้จ่ายที่ 2"),
		continuation("ORDER004").
			item(p2, 4).expense("ค่าโฆษณา", 3, UnitPercent).note("สินค้าที่ 3 + ค่าใช้จ่ายที่ 3 (เป็น %)"),
	}
}

// exampleProduct usa o produto real da posição i, completando campos vazios com o padrão
func exampleProduct(ds domain.ReferenceDataset, i int) domain.Product {
	p := fallbackProducts[i]
	if i >= len(ds.Products) {
		return p
	}
	src := ds.Products[i]
	if src.Name != "" {
		p.Name = src.Name
	}
	if src.Category != "" {
		p.Category = src.Category
	}
	if src.SKU != "" {
		p.SKU = src.SKU
	}
	if src.CostPrice != 0 {
		p.CostPrice = src.CostPrice
	}
	if src.SuggestedPrice != 0 {
		p.SuggestedPrice = src.SuggestedPrice
	}
	return p
}

func (r exampleRow) item(p domain.Product, quantity int) exampleRow {
	r[ColProductName] = p.Name
	r[ColCategory] = p.Category
	r[ColSKU] = p.SKU
	r[ColQuantity] = quantity
	r[ColUnitCost] = p.CostPrice
	r[ColUnitPrice] = p.SuggestedPrice
	return r
}

func (r exampleRow) expense(name string, amount float64, unit string) exampleRow {
	r[ColExpenseName] = name
	r[ColExpenseAmount] = amount
	r[ColExpenseUnit] = unit
	return r
}

func (r exampleRow) note(text string) exampleRow {
	r[ColNotes] = text
	return r
}

type instructionSection struct {
	title string
	lines []string
}

// instructionLines gera o texto da planilha de instruções, uma linha por célula
func instructionLines(opts Options) []string {
	sections := []instructionSection{
		{
			title: "การกรอกวันที่:",
			lines: []string{
				"ใช้รูปแบบ dd/mm/yyyy เช่น 02/07/2025",
				"หรือ yyyy-mm-dd เช่น 2025-07-02",
				"หรือพิมพ์ตัวเลขวันที่ Excel จะแปลงให้อัตโนมัติ",
			},
		},
	}
	if opts.IncludeCommissionType {
		sections = append(sections, instructionSection{
			title: "ประเภทค่าคอม:",
			lines: []string{
				fmt.Sprintf("%q = ใช้ค่าคอมที่ตั้งไว้ในสินค้า", CommissionFromProduct),
				fmt.Sprintf("%q = ใช้ค่าคอมที่ตั้งไว้ในครีเอเตอร์", CommissionFromCreator),
			},
		})
	}
	sections = append(sections,
		instructionSection{
			title: "การกรอกออเดอร์หลายรายการ:",
			lines: []string{
				"ใช้ Order ID เดียวกันสำหรับสินค้าหลายชนิด",
				"กรอกข้อมูลหลักในแถวแรก",
				"แถวถัดไปใส่เฉพาะสินค้าหรือค่าใช้จ่ายเพิ่มเติม",
			},
		},
		instructionSection{
			title: "การกรอกค่าใช้จ่าย:",
			lines: []string{
				"สามารถมีหลายรายการต่อ 1 ออเดอร์",
				fmt.Sprintf("หน่วยเป็น '%s' หรือ '%s'", UnitCurrency, UnitPercent),
				"ถ้าเป็น % จะคิดจากยอดขายรวม",
			},
		},
	)
	if opts.IncludeExamples {
		sections = append(sections, instructionSection{
			title: "ตัวอย่างในไฟล์:",
			lines: []string{
				"ORDER001: สินค้าเดียว + ค่าใช้จ่ายเดียว",
				"ORDER002: สินค้าหลายรายการ + ค่าใช้จ่ายเดียว",
				"ORDER003: สินค้าเดียว + ค่าใช้จ่ายหลายรายการ",
				"ORDER004: สินค้าหลายรายการ + ค่าใช้จ่ายหลายรายการ",
			},
		})
	}

	lines := []string{"คำอธิบายการใช้งาน Template"}
	for i, s := range sections {
		lines = append(lines, "", fmt.Sprintf("%d. %s", i+1, s.title))
		for _, l := range s.lines {
			lines = append(lines, "   - "+l)
		}
	}
	return lines
}
