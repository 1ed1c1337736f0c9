package report

import (
	"sort"

	"github.com/BruksfildServices01/imobiliaria-api/internal/models"
)

// Agregações de dashboard calculadas em memória sobre os conjuntos de
// linhas já filtrados. Sem estado próprio.

// ======================================================
// DASHBOARD
// ======================================================

type PropertyStats struct {
	Total       int            `json:"total"`
	Disponiveis int            `json:"disponiveis"`
	Vendidos    int            `json:"vendidos"`
	Alugados    int            `json:"alugados"`
	PorTipo     map[string]int `json:"por_tipo"`

	PorFinalidade      map[string]int     `json:"por_finalidade"`
	ValorPorFinalidade map[string]float64 `json:"valor_por_finalidade"`
}

type TransactionStats struct {
	Total      int     `json:"total"`
	Vendas     int     `json:"vendas"`
	Alugueis   int     `json:"alugueis"`
	ValorTotal float64 `json:"valor_total"`
}

type VisitStats struct {
	Total      int `json:"total"`
	Pendentes  int `json:"pendentes"`
	Realizados int `json:"realizados"`
	Cancelados int `json:"cancelados"`
}

type DashboardStats struct {
	Imoveis      PropertyStats    `json:"imoveis"`
	Transacoes   TransactionStats `json:"transacoes"`
	Agendamentos VisitStats       `json:"agendamentos"`
}

func Dashboard(
	imoveis []models.Property,
	transacoes []models.Transaction,
	agendamentos []models.Visit,
) DashboardStats {

	stats := DashboardStats{
		Imoveis: PropertyStats{
			Total:              len(imoveis),
			PorTipo:            map[string]int{},
			PorFinalidade:      map[string]int{},
			ValorPorFinalidade: map[string]float64{},
		},
	}

	for _, i := range imoveis {
		switch i.Status {
		case "disponivel":
			stats.Imoveis.Disponiveis++
		case "vendido":
			stats.Imoveis.Vendidos++
		case "alugado":
			stats.Imoveis.Alugados++
		}
		stats.Imoveis.PorTipo[i.Tipo]++
		stats.Imoveis.PorFinalidade[i.Finalidade]++
		stats.Imoveis.ValorPorFinalidade[i.Finalidade] += i.Preco
	}

	stats.Transacoes = Transactions(transacoes)

	stats.Agendamentos.Total = len(agendamentos)
	for _, a := range agendamentos {
		switch a.Status {
		case "pendente":
			stats.Agendamentos.Pendentes++
		case "realizado":
			stats.Agendamentos.Realizados++
		case "cancelado":
			stats.Agendamentos.Cancelados++
		}
	}

	return stats
}

func Transactions(transacoes []models.Transaction) TransactionStats {
	stats := TransactionStats{Total: len(transacoes)}
	for _, t := range transacoes {
		if t.Tipo == "venda" {
			stats.Vendas++
		} else {
			stats.Alugueis++
		}
		stats.ValorTotal += t.Valor
	}
	return stats
}

type TransactionBreakdown struct {
	Total        int                `json:"total"`
	PorTipo      map[string]int     `json:"por_tipo"`
	PorStatus    map[string]int     `json:"por_status"`
	ValorPorTipo map[string]float64 `json:"valor_por_tipo"`
}

func TransactionsDetailed(transacoes []models.Transaction) TransactionBreakdown {
	stats := TransactionBreakdown{
		Total:        len(transacoes),
		PorTipo:      map[string]int{},
		PorStatus:    map[string]int{},
		ValorPorTipo: map[string]float64{},
	}
	for _, t := range transacoes {
		stats.PorTipo[t.Tipo]++
		stats.PorStatus[t.Status]++
		stats.ValorPorTipo[t.Tipo] += t.Valor
	}
	return stats
}

// ======================================================
// COMISSÕES POR CORRETOR
// ======================================================

type BrokerCommission struct {
	CorretorID      uint    `json:"corretor_id"`
	CorretorNome    string  `json:"corretor_nome"`
	CorretorEmail   string  `json:"corretor_email"`
	TotalTransacoes int     `json:"total_transacoes"`
	ValorTotal      float64 `json:"valor_total"`
	ComissaoTotal   float64 `json:"comissao_total"`
}

func Commissions(
	transacoes []models.Transaction,
	corretores map[uint]models.User,
	saleRate float64,
	rentalRate float64,
) []BrokerCommission {

	byBroker := map[uint]*BrokerCommission{}

	for _, t := range transacoes {
		entry, ok := byBroker[t.CorretorID]
		if !ok {
			entry = &BrokerCommission{CorretorID: t.CorretorID}
			if u, found := corretores[t.CorretorID]; found {
				entry.CorretorNome = u.Nome
				entry.CorretorEmail = u.Email
			}
			byBroker[t.CorretorID] = entry
		}

		entry.TotalTransacoes++
		entry.ValorTotal += t.Valor

		rate := rentalRate
		if t.Tipo == "venda" {
			rate = saleRate
		}
		entry.ComissaoTotal += t.Valor * rate
	}

	return sortedByBroker(byBroker)
}

// ======================================================
// CONVERSÃO VISITA → NEGÓCIO
// ======================================================

type BrokerConversion struct {
	CorretorID        uint    `json:"corretor_id"`
	CorretorNome      string  `json:"corretor_nome"`
	TotalVisitas      int     `json:"total_visitas"`
	VisitasRealizadas int     `json:"visitas_realizadas"`
	VendasAlugueis    int     `json:"vendas_alugueis"`
	TaxaConversao     float64 `json:"taxa_conversao"`
}

// Conversion recebe as transações já restritas a status concluido.
func Conversion(
	agendamentos []models.Visit,
	concluidas []models.Transaction,
	corretores map[uint]models.User,
) []BrokerConversion {

	byBroker := map[uint]*BrokerConversion{}

	for _, a := range agendamentos {
		entry, ok := byBroker[a.CorretorID]
		if !ok {
			entry = &BrokerConversion{CorretorID: a.CorretorID}
			if u, found := corretores[a.CorretorID]; found {
				entry.CorretorNome = u.Nome
			}
			byBroker[a.CorretorID] = entry
		}

		entry.TotalVisitas++
		if a.Status == "realizado" {
			entry.VisitasRealizadas++
		}
	}

	for _, t := range concluidas {
		if entry, ok := byBroker[t.CorretorID]; ok {
			entry.VendasAlugueis++
		}
	}

	result := sortedByBrokerConv(byBroker)
	for i := range result {
		if result[i].VisitasRealizadas > 0 {
			result[i].TaxaConversao = float64(result[i].VendasAlugueis) /
				float64(result[i].VisitasRealizadas) * 100
		}
	}
	return result
}

// ======================================================
// VISITAS POR IMÓVEL
// ======================================================

type PropertyVisits struct {
	ImovelID     uint   `json:"imovel_id"`
	ImovelTipo   string `json:"imovel_tipo"`
	ImovelCidade string `json:"imovel_cidade"`
	TotalVisitas int    `json:"total_visitas"`
	Realizadas   int    `json:"realizadas"`
	Canceladas   int    `json:"canceladas"`
	Pendentes    int    `json:"pendentes"`
}

func VisitsByProperty(
	agendamentos []models.Visit,
	imoveis map[uint]models.Property,
) []PropertyVisits {

	byProperty := map[uint]*PropertyVisits{}

	for _, a := range agendamentos {
		entry, ok := byProperty[a.ImovelID]
		if !ok {
			entry = &PropertyVisits{ImovelID: a.ImovelID}
			if p, found := imoveis[a.ImovelID]; found {
				entry.ImovelTipo = p.Tipo
				entry.ImovelCidade = p.Cidade
			}
			byProperty[a.ImovelID] = entry
		}

		entry.TotalVisitas++
		switch a.Status {
		case "realizado":
			entry.Realizadas++
		case "cancelado":
			entry.Canceladas++
		case "pendente":
			entry.Pendentes++
		}
	}

	result := make([]PropertyVisits, 0, len(byProperty))
	for _, entry := range byProperty {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ImovelID < result[j].ImovelID
	})
	return result
}

// ======================================================
// IMÓVEIS POR TIPO / STATUS
// ======================================================

type TipoBreakdown struct {
	Total      int `json:"total"`
	Disponivel int `json:"disponivel"`
	Vendido    int `json:"vendido"`
	Alugado    int `json:"alugado"`
	Reservado  int `json:"reservado"`
}

func PropertiesByTipo(imoveis []models.Property) map[string]TipoBreakdown {
	stats := map[string]TipoBreakdown{}
	for _, i := range imoveis {
		entry := stats[i.Tipo]
		entry.Total++
		switch i.Status {
		case "disponivel":
			entry.Disponivel++
		case "vendido":
			entry.Vendido++
		case "alugado":
			entry.Alugado++
		case "reservado":
			entry.Reservado++
		}
		stats[i.Tipo] = entry
	}
	return stats
}

type StatusBreakdown struct {
	Total int            `json:"total"`
	Tipos map[string]int `json:"tipos"`
}

func PropertiesByStatus(imoveis []models.Property) map[string]StatusBreakdown {
	stats := map[string]StatusBreakdown{}
	for _, i := range imoveis {
		entry, ok := stats[i.Status]
		if !ok {
			entry = StatusBreakdown{Tipos: map[string]int{}}
		}
		entry.Total++
		entry.Tipos[i.Tipo]++
		stats[i.Status] = entry
	}
	return stats
}

// ------------------------------------------------------

func sortedByBroker(m map[uint]*BrokerCommission) []BrokerCommission {
	result := make([]BrokerCommission, 0, len(m))
	for _, entry := range m {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CorretorID < result[j].CorretorID
	})
	return result
}

func sortedByBrokerConv(m map[uint]*BrokerConversion) []BrokerConversion {
	result := make([]BrokerConversion, 0, len(m))
	for _, entry := range m {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CorretorID < result[j].CorretorID
	})
	return result
}
