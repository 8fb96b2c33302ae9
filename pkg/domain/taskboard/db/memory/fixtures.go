package memory

import (
	"time"

	"github.com/taskboard/taskboard/pkg/domain"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func birth(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SampleUsers are users of the demo board.
func SampleUsers() []domain.User {
	return []domain.User{
		{Id: 1, FirstName: "João", LastName: "Silva Oliveira", BirthDate: birth(1990, time.January, 1)},
		{Id: 2, FirstName: "Maria", LastName: "Souza Santos", BirthDate: birth(1985, time.May, 15)},
		{Id: 3, FirstName: "Pedro", LastName: "Santos Costa", BirthDate: birth(1992, time.November, 20)},
		{Id: 4, FirstName: "Ana", LastName: "Oliveira Ferreira", BirthDate: birth(1988, time.July, 7)},
		{Id: 5, FirstName: "Carlos", LastName: "Mendes Rodrigues", BirthDate: birth(1995, time.March, 25)},
	}
}

// SampleTasks are tasks of the demo board, referring SampleUsers.
func SampleTasks() []domain.Task {
	user := func(id int64) domain.User { return domain.User{Id: id} }
	updated := func(s string) *time.Time {
		t := at(s)
		return &t
	}

	return []domain.Task{
		{
			Id:          1,
			Title:       "Analisar Código COBOL Legado",
			Description: "Revisar a estrutura do programa de contabilidade principal (CONTABIL.CBL) para identificar módulos de dívida técnica.",
			Status:      domain.Pending, Priority: domain.High,
			Assignee: user(1), Creator: user(1),
			Tags:      []string{"COBOL", "legado", "análise", "manutenção"},
			CreatedAt: at("2025-06-20T10:00:00Z"), UpdatedAt: updated("2025-06-20T10:00:00Z"),
		},
		{
			Id:          2,
			Title:       "Migrar Dados para o Novo Sistema Relacional",
			Description: "Extrair dados do VSAM para o SQL Server. Foco na tabela de clientes.",
			Status:      domain.InProgress, Priority: domain.High,
			Assignee: user(2), Creator: user(1),
			Tags:      []string{"migração", "banco de dados", "VSAM", "SQL"},
			CreatedAt: at("2025-06-21T11:00:00Z"), UpdatedAt: updated("2025-06-24T09:00:00Z"),
		},
		{
			Id:          3,
			Title:       "Otimizar Rotina de Batch Noturno",
			Description: "Investigar gargalos de performance na rotina de processamento de final de dia e aplicar otimizações.",
			Status:      domain.Pending, Priority: domain.Medium,
			Assignee: user(3), Creator: user(2),
			Tags:      []string{"batch", "performance", "mainframe"},
			CreatedAt: at("2025-06-18T14:30:00Z"), UpdatedAt: updated("2025-06-23T18:00:00Z"),
		},
		{
			Id:          4,
			Title:       "Documentar Procedimentos de Deploy em JCL",
			Description: "Criar documentação detalhada dos scripts JCL para o deploy de novas versões do sistema de folha de pagamento.",
			Status:      domain.Completed, Priority: domain.Low,
			Assignee: user(4), Creator: user(3),
			Tags:      []string{"documentação", "deploy", "JCL"},
			CreatedAt: at("2025-06-22T16:00:00Z"), UpdatedAt: updated("2025-06-22T16:00:00Z"),
		},
		{
			Id:          5,
			Title:       "Treinamento em ZOS para Novos Estagiários",
			Description: "Desenvolver e ministrar módulo de treinamento básico sobre o sistema operacional ZOS para a nova turma de estagiários.",
			Status:      domain.Pending, Priority: domain.Medium,
			Assignee: user(5), Creator: user(4),
			Tags:      []string{"treinamento", "ZOS", "estágio"},
			CreatedAt: at("2025-06-23T09:00:00Z"), UpdatedAt: updated("2025-06-23T09:00:00Z"),
		},
		{
			Id:          6,
			Title:       "Auditar Segurança do CICS",
			Description: "Realizar auditoria de configurações de segurança do ambiente CICS para conformidade com novas políticas da empresa.",
			Status:      domain.Cancelled, Priority: domain.High,
			Assignee: user(1), Creator: user(5),
			Tags:      []string{"segurança", "CICS", "auditoria"},
			CreatedAt: at("2025-06-24T09:00:00Z"), UpdatedAt: updated("2025-06-24T09:00:00Z"),
		},
	}
}

// Sample is a store with the demo board loaded.
func Sample(options ...Option) *Store {
	return New(append([]Option{WithFixtures(SampleUsers(), SampleTasks())}, options...)...)
}
