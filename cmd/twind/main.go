package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ems-iodt/twinscale/cmd/twind/handlers"
	"github.com/ems-iodt/twinscale/pkg/configs/server"
	"github.com/ems-iodt/twinscale/pkg/conn/db/postgres/pool"
	"github.com/ems-iodt/twinscale/pkg/domain/location"
	"github.com/ems-iodt/twinscale/pkg/domain/rdf"
	tenantpg "github.com/ems-iodt/twinscale/pkg/domain/tenant/db/postgres"
	"github.com/ems-iodt/twinscale/pkg/twin/catalog"
	"github.com/ems-iodt/twinscale/pkg/utils/echoutil"
)

func main() {
	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()

	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	conf, err := server.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configuration: %s", err)
	}

	ctx := context.Background()

	db, err := pool.New(ctx, conf.DBURI)
	if err != nil {
		log.Fatalf("can not connect to the database: %s", err)
	}
	defer db.Close()
	if err := tenantpg.Init(ctx, db); err != nil {
		log.Fatalf("can not prepare the tenant table: %s", err)
	}
	tenantRegistry := tenantpg.New(db)

	store := rdf.NewStore(
		http.DefaultClient,
		conf.Fuseki.URL, conf.Fuseki.Dataset,
		conf.Fuseki.User, conf.Fuseki.Password,
	)
	if err := store.Ping(ctx); err != nil {
		log.Printf("the RDF store is not reachable yet: %s", err)
	}

	lib, err := catalog.Load(conf.DTDLLibraryDir)
	if err != nil {
		log.Fatalf("can not load the DTDL library: %s", err)
	}
	log.Printf("DTDL library loaded: %d interfaces", lib.Len())
	go func() {
		if err := lib.Watch(ctx, log.Default()); err != nil && ctx.Err() == nil {
			log.Printf("DTDL library watch stopped: %s", err)
		}
	}()

	resolver := location.NewResolver()

	{
		twin := e.Group("/api/v2/twin")
		twin.POST("/create", handlers.CreateThingHandler(store, conf.DefaultTenant))
		twin.GET("/rdf/interfaces", handlers.FindInterfacesHandler(store, conf.DefaultTenant))
		twin.GET("/rdf/interfaces/:name", handlers.GetInterfaceHandler(store, conf.DefaultTenant, "name"))
		twin.DELETE("/rdf/interfaces/:name", handlers.DeleteInterfaceHandler(store, conf.DefaultTenant, "name"))
		twin.GET("/export/:name", handlers.ExportHandler(store, conf.DefaultTenant, "name"))
		twin.POST("/rdf/query", handlers.QueryHandler(store))
		twin.GET("/location", handlers.LocationHandler(resolver))
	}

	{
		d := e.Group("/api/v2/dtdl")
		d.GET("/interfaces", handlers.FindDTDLInterfacesHandler(lib))
		d.GET("/interfaces/:dtmi/summary", handlers.GetDTDLSummaryHandler(lib, "dtmi"))
		d.POST("/validate", handlers.ValidateThingHandler(lib))
		d.POST("/find-best-match", handlers.FindBestMatchHandler(lib))
		d.POST("/convert/to-twinscale/:dtmi", handlers.ConvertToTwinHandler(lib, "dtmi"))
	}

	{
		t := e.Group("/api/tenants")
		t.POST("", handlers.CreateTenantHandler(tenantRegistry))
		t.GET("", handlers.ListTenantsHandler(tenantRegistry))
		t.GET("/:id", handlers.GetTenantHandler(tenantRegistry, "id"))
		t.PUT("/:id", handlers.UpdateTenantHandler(tenantRegistry, "id"))
		t.DELETE("/:id", handlers.DeleteTenantHandler(tenantRegistry, "id"))
	}

	log.Println("registered routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.ServerPort, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.ServerPort))
	}
}
