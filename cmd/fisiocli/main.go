package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"fisiomaster-admin/internal/adapters/api"
	"fisiomaster-admin/internal/adapters/storage/file"
	"fisiomaster-admin/internal/domain/pacientes"
	"fisiomaster-admin/internal/domain/procedimentos"
	"fisiomaster-admin/internal/domain/relatorios"
	"fisiomaster-admin/internal/platform/config"
	"fisiomaster-admin/internal/platform/httpclient"
	"fisiomaster-admin/internal/platform/logger"
	"fisiomaster-admin/internal/session"
)

const usage = `uso: fisiocli [-config <path>] <comando> [flags]

Sesión:
  register        -name -email -password
  login           -email -password
  logout
  whoami

Pacientes:
  pacientes list
  pacientes get    -id
  pacientes create -nome -telefone -plano [-nascimento -email -endereco -carteirinha -obs]
  pacientes update -id -nome -telefone -plano [...]
  pacientes delete -id

Procedimentos:
  procedimentos list
  procedimentos list-paciente -paciente
  procedimentos get    -id
  procedimentos create -paciente -plano -valor [-nome -descricao -data -evolucao]
  procedimentos update -id -paciente -plano -valor [...]
  procedimentos delete -id

Relatórios:
  relatorio       -start -end            (yyyy-MM-dd)
  relatorio email -to -start -end [-scope completo|particular|plano-saude]
  relatorio pdf   -out -start -end
`

// app junta el wiring completo del cliente: config -> http -> session ->
// stores. Los comandos operan sobre los stores y renderizan el snapshot,
// igual que lo haría una vista.
type app struct {
	manager       *session.Manager
	pacientes     *pacientes.Store
	procedimentos *procedimentos.Store
	relClient     *relatorios.Client
	relatorios    *relatorios.Store
}

func main() {
	cfgPath := flag.String("config", "", "path del YAML de configuración (opcional)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	a, err := buildApp(*cfgPath)
	if err != nil {
		fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	if err := a.run(ctx, flag.Args()); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "erro:", err)
	os.Exit(1)
}

func buildApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "fisiocli",
	})

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:     cfg.API.URL,
		Timeout:     cfg.API.Timeout,
		SlowTimeout: cfg.API.SlowTimeout,
	})
	if err != nil {
		return nil, err
	}

	store, err := file.NewSessionStore(cfg.Session.Path)
	if err != nil {
		return nil, err
	}
	manager := session.NewManager(api.NewAuthClient(hc), store, log)

	return &app{
		manager:       manager,
		pacientes:     pacientes.NewStore(pacientes.NewResource(hc, manager, manager)),
		procedimentos: procedimentos.NewStore(procedimentos.NewResource(hc, manager, manager)),
		relClient:     relatorios.NewClient(hc, manager, manager),
		relatorios:    relatorios.NewStore(),
	}, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "register":
		return a.cmdRegister(ctx, args[1:])
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "logout":
		a.manager.Logout()
		fmt.Println("sessão encerrada")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "pacientes":
		return a.cmdPacientes(ctx, args[1:])
	case "procedimentos":
		return a.cmdProcedimentos(ctx, args[1:])
	case "relatorio":
		return a.cmdRelatorio(ctx, args[1:])
	default:
		return fmt.Errorf("comando desconhecido: %s", args[0])
	}
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "nome")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "senha")
	_ = fs.Parse(args)

	sess, err := a.manager.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("conta criada: %s <%s>\n", sess.Name, sess.Email)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "senha")
	_ = fs.Parse(args)

	sess, err := a.manager.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("login ok: %s <%s>\n", sess.Name, sess.Email)
	return nil
}

func (a *app) cmdWhoami() error {
	sess, ok := a.manager.Current()
	if !ok {
		fmt.Println("sem sessão ativa")
		return nil
	}
	fmt.Printf("%s <%s>\n", sess.Name, sess.Email)
	return nil
}

// ---------------------------------
// Pacientes
// ---------------------------------

func pacienteFlags(fs *flag.FlagSet) *pacientes.Paciente {
	p := &pacientes.Paciente{}
	fs.StringVar(&p.Nome, "nome", "", "nome completo")
	fs.StringVar(&p.DataNascimento, "nascimento", "", "data de nascimento (yyyy-MM-dd)")
	fs.StringVar(&p.Telefone, "telefone", "", "telefone")
	fs.StringVar(&p.Email, "email", "", "email")
	fs.StringVar(&p.Endereco, "endereco", "", "endereço")
	fs.StringVar(&p.PlanoSaude, "plano", "", "plano de saúde (Particular, SUS, ...)")
	fs.StringVar(&p.NumeroCarteirinha, "carteirinha", "", "número da carteirinha")
	fs.StringVar(&p.Observacoes, "obs", "", "observações")
	return p
}

func (a *app) cmdPacientes(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("pacientes: subcomando requerido (list|get|create|update|delete)")
	}

	switch args[0] {
	case "list":
		if err := a.pacientes.List(ctx); err != nil {
			return err
		}
		snap := a.pacientes.Container().Snapshot()
		for _, p := range snap.Items {
			fmt.Printf("%s\t%s\t%s\t%s\n", p.ID, p.Nome, p.Telefone, p.PlanoSaude)
		}
		fmt.Printf("total: %d\n", len(snap.Items))
		return nil

	case "get":
		fs := flag.NewFlagSet("pacientes get", flag.ExitOnError)
		id := fs.String("id", "", "id do paciente")
		_ = fs.Parse(args[1:])
		if err := a.pacientes.Get(ctx, *id); err != nil {
			return err
		}
		snap := a.pacientes.Container().Snapshot()
		if snap.Selected != nil {
			printPaciente(*snap.Selected)
		}
		return nil

	case "create":
		fs := flag.NewFlagSet("pacientes create", flag.ExitOnError)
		p := pacienteFlags(fs)
		_ = fs.Parse(args[1:])
		if err := a.pacientes.Create(ctx, *p); err != nil {
			return err
		}
		snap := a.pacientes.Container().Snapshot()
		if n := len(snap.Items); n > 0 {
			fmt.Println("criado:", snap.Items[n-1].ID)
		}
		return nil

	case "update":
		fs := flag.NewFlagSet("pacientes update", flag.ExitOnError)
		id := fs.String("id", "", "id do paciente")
		p := pacienteFlags(fs)
		_ = fs.Parse(args[1:])
		if err := a.pacientes.Update(ctx, *id, *p); err != nil {
			return err
		}
		fmt.Println("atualizado:", *id)
		return nil

	case "delete":
		fs := flag.NewFlagSet("pacientes delete", flag.ExitOnError)
		id := fs.String("id", "", "id do paciente")
		_ = fs.Parse(args[1:])
		if err := a.pacientes.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Println("removido:", *id)
		return nil

	default:
		return fmt.Errorf("pacientes: subcomando desconhecido: %s", args[0])
	}
}

func printPaciente(p pacientes.Paciente) {
	fmt.Println("id:         ", p.ID)
	fmt.Println("nome:       ", p.Nome)
	fmt.Println("nascimento: ", p.DataNascimento)
	fmt.Println("telefone:   ", p.Telefone)
	fmt.Println("email:      ", p.Email)
	fmt.Println("endereço:   ", p.Endereco)
	fmt.Println("plano:      ", p.PlanoSaude)
	fmt.Println("carteirinha:", p.NumeroCarteirinha)
	fmt.Println("obs:        ", p.Observacoes)
}

// ---------------------------------
// Procedimentos
// ---------------------------------

func procedimentoFlags(fs *flag.FlagSet) (*procedimentos.Procedimento, *string) {
	p := &procedimentos.Procedimento{}
	fs.StringVar(&p.Nome, "nome", "", "nome do procedimento")
	fs.StringVar(&p.Descricao, "descricao", "", "descrição")
	fs.StringVar(&p.Paciente.ID, "paciente", "", "id do paciente")
	fs.StringVar(&p.DataRealizacao, "data", "", "data de realização (yyyy-MM-dd)")
	fs.StringVar(&p.Evolucao, "evolucao", "", "evolução")
	fs.StringVar(&p.PlanoSaude, "plano", "", "plano de saúde")
	valor := fs.String("valor", "", "valor do plano (ex: 80.00)")
	return p, valor
}

func parseValor(p *procedimentos.Procedimento, valor string) error {
	if valor == "" {
		return nil
	}
	v, err := decimal.NewFromString(valor)
	if err != nil {
		return fmt.Errorf("valor inválido: %s", valor)
	}
	p.ValorPlano = v
	return nil
}

func (a *app) cmdProcedimentos(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("procedimentos: subcomando requerido (list|list-paciente|get|create|update|delete)")
	}

	printList := func() {
		snap := a.procedimentos.Container().Snapshot()
		for _, p := range snap.Items {
			nomePaciente := p.Paciente.ID
			if p.Paciente.Resumo != nil {
				nomePaciente = p.Paciente.Resumo.Nome
			}
			fmt.Printf("%s\t%s\t%s\t%s\tR$ %s\n",
				p.ID, p.Nome, nomePaciente, p.DataRealizacao, p.ValorPlano.StringFixed(2))
		}
		fmt.Printf("total: %d\n", len(snap.Items))
	}

	switch args[0] {
	case "list":
		if err := a.procedimentos.List(ctx); err != nil {
			return err
		}
		printList()
		return nil

	case "list-paciente":
		fs := flag.NewFlagSet("procedimentos list-paciente", flag.ExitOnError)
		pacienteID := fs.String("paciente", "", "id do paciente")
		_ = fs.Parse(args[1:])
		if err := a.procedimentos.ListByPaciente(ctx, *pacienteID); err != nil {
			return err
		}
		printList()
		return nil

	case "get":
		fs := flag.NewFlagSet("procedimentos get", flag.ExitOnError)
		id := fs.String("id", "", "id do procedimento")
		_ = fs.Parse(args[1:])
		if err := a.procedimentos.Get(ctx, *id); err != nil {
			return err
		}
		snap := a.procedimentos.Container().Snapshot()
		if snap.Selected != nil {
			printProcedimento(*snap.Selected)
		}
		return nil

	case "create":
		fs := flag.NewFlagSet("procedimentos create", flag.ExitOnError)
		p, valor := procedimentoFlags(fs)
		_ = fs.Parse(args[1:])
		if err := parseValor(p, *valor); err != nil {
			return err
		}
		if err := a.procedimentos.Create(ctx, *p); err != nil {
			return err
		}
		snap := a.procedimentos.Container().Snapshot()
		if n := len(snap.Items); n > 0 {
			fmt.Println("criado:", snap.Items[n-1].ID)
		}
		return nil

	case "update":
		fs := flag.NewFlagSet("procedimentos update", flag.ExitOnError)
		id := fs.String("id", "", "id do procedimento")
		p, valor := procedimentoFlags(fs)
		_ = fs.Parse(args[1:])
		if err := parseValor(p, *valor); err != nil {
			return err
		}
		if err := a.procedimentos.Update(ctx, *id, *p); err != nil {
			return err
		}
		fmt.Println("atualizado:", *id)
		return nil

	case "delete":
		fs := flag.NewFlagSet("procedimentos delete", flag.ExitOnError)
		id := fs.String("id", "", "id do procedimento")
		_ = fs.Parse(args[1:])
		if err := a.procedimentos.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Println("removido:", *id)
		return nil

	default:
		return fmt.Errorf("procedimentos: subcomando desconhecido: %s", args[0])
	}
}

func printProcedimento(p procedimentos.Procedimento) {
	fmt.Println("id:       ", p.ID)
	fmt.Println("nome:     ", p.Nome)
	fmt.Println("descrição:", p.Descricao)
	if p.Paciente.Resumo != nil {
		fmt.Printf("paciente:  %s (%s)\n", p.Paciente.Resumo.Nome, p.Paciente.ID)
	} else {
		fmt.Println("paciente: ", p.Paciente.ID)
	}
	fmt.Println("data:     ", p.DataRealizacao)
	fmt.Println("evolução: ", p.Evolucao)
	fmt.Println("plano:    ", p.PlanoSaude)
	fmt.Println("valor:     R$", p.ValorPlano.StringFixed(2))
	fmt.Println("valor fixo: R$", p.ValorFixo.StringFixed(2))
}

// ---------------------------------
// Relatórios
// ---------------------------------

func (a *app) cmdRelatorio(ctx context.Context, args []string) error {
	// "relatorio email ..." y "relatorio pdf ..." son side-channels; sin
	// subcomando es el fetch normal.
	if len(args) > 0 && args[0] == "email" {
		return a.cmdRelatorioEmail(ctx, args[1:])
	}
	if len(args) > 0 && args[0] == "pdf" {
		return a.cmdRelatorioPDF(ctx, args[1:])
	}

	fs := flag.NewFlagSet("relatorio", flag.ExitOnError)
	start := fs.String("start", "", "data inicial (yyyy-MM-dd)")
	end := fs.String("end", "", "data final (yyyy-MM-dd)")
	_ = fs.Parse(args)

	if err := a.relatorios.Fetch(ctx, a.relClient, *start, *end); err != nil {
		return err
	}

	snap := a.relatorios.Snapshot()
	rel := snap.Relatorio
	fmt.Printf("período: %s a %s\n", rel.PeriodoInicio, rel.PeriodoFim)
	fmt.Println("procedimentos:       ", rel.TotalProcedimentos)
	fmt.Println("produção total:       R$", rel.Producao.StringFixed(2))
	fmt.Println("produção particular:  R$", rel.ProducaoParticular.StringFixed(2))
	fmt.Println("produção planos:      R$", rel.ProducaoPlanoSaude.StringFixed(2))
	fmt.Println("total particular:     R$", rel.TotalParticular.StringFixed(2))
	fmt.Println("total planos:         R$", rel.TotalPlanoSaude.StringFixed(2))
	fmt.Println("evoluções geradas:   ", rel.EvolucoesGeradas)
	fmt.Println("pacientes atendidos: ", rel.PacientesAtendidos)
	return nil
}

func (a *app) cmdRelatorioEmail(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("relatorio email", flag.ExitOnError)
	to := fs.String("to", "", "endereço de destino")
	scope := fs.String("scope", "completo", "completo|particular|plano-saude")
	start := fs.String("start", "", "data inicial (yyyy-MM-dd)")
	end := fs.String("end", "", "data final (yyyy-MM-dd)")
	_ = fs.Parse(args)

	msg, err := a.relClient.Email(ctx, *to, relatorios.Scope(*scope), *start, *end)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func (a *app) cmdRelatorioPDF(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("relatorio pdf", flag.ExitOnError)
	out := fs.String("out", "relatorio.pdf", "arquivo de saída")
	start := fs.String("start", "", "data inicial (yyyy-MM-dd)")
	end := fs.String("end", "", "data final (yyyy-MM-dd)")
	_ = fs.Parse(args)

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := a.relClient.DownloadPDF(ctx, *start, *end, f); err != nil {
		_ = os.Remove(*out)
		return err
	}
	fmt.Println("salvo em", *out)
	return nil
}
