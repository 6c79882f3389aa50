// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// Nomes das coleções de referência, usados em logs e erros
const (
	PlatformsCollection = "platforms"
	CreatorsCollection  = "creators"
	ProductsCollection  = "products"
)

type Platform struct {
	Name string `json:"name"`
}

type Creator struct {
	Name           string   `json:"name"`
	CommissionRate *float64 `json:"commission_rate"`
}

type Product struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	SKU            string   `json:"sku"`
	CostPrice      float64  `json:"costprice"`
	SuggestedPrice float64  `json:"suggestedPrice"`
	CommissionRate *float64 `json:"commissionRate"`
}

// ReferenceDataset agrupa os dados de referência de um usuário.
// É criado a cada requisição e não é alterado depois da busca.
type ReferenceDataset struct {
	Platforms []Platform
	Creators  []Creator
	Products  []Product
}

// Rate retorna a comissão do criador, 0 quando não configurada
func (c Creator) Rate() float64 {
	if c.CommissionRate == nil {
		return 0
	}
	return *c.CommissionRate
}

// Rate retorna a comissão do produto, 0 quando não configurada
func (p Product) Rate() float64 {
	if p.CommissionRate == nil {
		return 0
	}
	return *p.CommissionRate
}

func (d ReferenceDataset) PlatformNames() []string {
	names := make([]string, 0, len(d.Platforms))
	for _, p := range d.Platforms {
		names = append(names, p.Name)
	}
	return names
}

func (d ReferenceDataset) CreatorNames() []string {
	names := make([]string, 0, len(d.Creators))
	for _, c := range d.Creators {
		names = append(names, c.Name)
	}
	return names
}

func (d ReferenceDataset) ProductNames() []string {
	names := make([]string, 0, len(d.Products))
	for _, p := range d.Products {
		names = append(names, p.Name)
	}
	return names
}
