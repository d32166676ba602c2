package query

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"

	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_SPARQL = "SPARQL"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Run a SPARQL SELECT against the triple store.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_SPARQL, Required: false, Repeatable: true,
				Help: "SELECT query text. When omitted, the query is read from stdin.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Run a raw SPARQL SELECT query. Only SELECT is allowed.

	{{ .Command }} 'SELECT ?s WHERE { ?s ?p ?o } LIMIT 10'
	cat query.rq | {{ .Command }}

Each result row is a JSON object mapping variable name to value.
`),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		twinEnv env.TwinEnv,
		client rest.TwinClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		sparql := strings.Join(cl.Args()[ARG_SPARQL], " ")
		if strings.TrimSpace(sparql) == "" {
			buf, err := io.ReadAll(cl.Stdin())
			if err != nil {
				return err
			}
			sparql = string(buf)
		}

		rows, err := client.Query(ctx, sparql)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(rows); err != nil {
			logger.Panicf("fail to dump query results")
		}
		return nil
	}
}
