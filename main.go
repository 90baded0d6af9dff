package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/plinthlabs/tokenbook/auth"
	"github.com/plinthlabs/tokenbook/ledger"
	"github.com/plinthlabs/tokenbook/registry"
	"github.com/plinthlabs/tokenbook/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := cli.NewApp()
	app.Name = "tokenbook"
	app.Usage = "token and collection registry with a per-token transfer ledger"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "~/.tokenbook/config.toml",
			Usage: "configuration file path",
		},
		cli.StringFlag{
			Name:  "dir, d",
			Usage: "database directory path, overrides the configuration",
		},
		cli.StringFlag{
			Name:  "principal, p",
			Usage: "requesting principal, defaults to the configured admin",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "create-collection",
			Usage: "register a new collection suffix",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "suffix, s"},
			},
			Action: createCollectionCmd,
		},
		{
			Name:  "delete-collection",
			Usage: "remove a collection by suffix",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "suffix, s"},
			},
			Action: deleteCollectionCmd,
		},
		{
			Name:   "collections",
			Usage:  "list live collections",
			Action: listCollectionsCmd,
		},
		{
			Name:  "mint",
			Usage: "mint a new token into a collection, held by the custodian",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "uri, u"},
				cli.StringFlag{Name: "cid"},
				cli.StringFlag{Name: "suffix, s"},
				cli.Uint64Flag{Name: "amount, a", Value: 1},
			},
			Action: mintCmd,
		},
		{
			Name:  "mint-direct",
			Usage: "mint units of a token ID straight to an account",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "account"},
				cli.Uint64Flag{Name: "id"},
				cli.Uint64Flag{Name: "amount, a", Value: 1},
			},
			Action: mintDirectCmd,
		},
		{
			Name:  "transfer",
			Usage: "move token units between accounts",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "from"},
				cli.StringFlag{Name: "to"},
				cli.Uint64Flag{Name: "id"},
				cli.Uint64Flag{Name: "amount, a", Value: 1},
			},
			Action: transferCmd,
		},
		{
			Name:   "tokens",
			Usage:  "list collection-linked token records",
			Action: listTokensCmd,
		},
		{
			Name:  "history",
			Usage: "print the transfer history of a token",
			Flags: []cli.Flag{
				cli.Uint64Flag{Name: "id"},
			},
			Action: historyCmd,
		},
		{
			Name:  "balance",
			Usage: "print an account balance for a token",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "account"},
				cli.Uint64Flag{Name: "id"},
			},
			Action: balanceCmd,
		},
		{
			Name:  "store-data",
			Usage: "append an opaque value to the data store",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "value, v"},
			},
			Action: storeDataCmd,
		},
		{
			Name:  "delete-data",
			Usage: "delete one matching value from the data store",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "value, v"},
			},
			Action: deleteDataCmd,
		},
		{
			Name:   "data",
			Usage:  "list the data store",
			Action: listDataCmd,
		},
		{
			Name:   "pause",
			Usage:  "block all balance mutation",
			Action: pauseCmd,
		},
		{
			Name:   "resume",
			Usage:  "lift the pause",
			Action: resumeCmd,
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("tokenbook")
	}
}

type env struct {
	registry  *registry.Registry
	store     *store.BadgerStore
	principal string
	cancel    context.CancelFunc
}

func (e *env) Close() {
	e.cancel()
	e.store.Close()
}

func buildEnv(c *cli.Context) (*env, error) {
	conf, err := Setup(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}
	dir := c.GlobalString("dir")
	if dir == "" {
		dir = conf.DataDir
	}
	ctx, cancel := context.WithCancel(context.Background())
	bs, err := store.OpenBadger(ctx, expandHome(dir))
	if err != nil {
		cancel()
		return nil, err
	}
	bl, err := ledger.New(bs)
	if err != nil {
		cancel()
		bs.Close()
		return nil, err
	}
	gate := auth.NewGate()
	gate.Grant(registry.RoleAdmin, conf.Admin)
	gate.Grant(registry.RoleMinter, conf.Admin)
	gate.Grant(registry.RoleCollectionCreator, conf.Admin)

	reg, err := registry.Build(bs, bl, gate, ledger.NewFungible(), conf.Custodian)
	if err != nil {
		cancel()
		bs.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-reg.Events():
				log.Info().Str("type", e.Type).Interface("event", e).Msg("notification")
			}
		}
	}()

	principal := c.GlobalString("principal")
	if principal == "" {
		principal = conf.Admin
	}
	return &env{registry: reg, store: bs, principal: principal, cancel: cancel}, nil
}

func createCollectionCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.registry.CreateCollection(c.String("suffix"), e.principal)
	if err != nil {
		return err
	}
	fmt.Printf("collection %d\n", id)
	return nil
}

func deleteCollectionCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.registry.DeleteCollection(c.String("suffix"), e.principal)
}

func listCollectionsCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	for _, col := range e.registry.ListCollections() {
		fmt.Printf("%d\t%s\n", col.ID, col.Suffix)
	}
	return nil
}

func mintCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	cid, err := registry.ParseCID(c.String("cid"))
	if err != nil {
		return err
	}
	id, err := e.registry.MintIntoCollection(c.String("uri"), c.Uint64("amount"), cid, c.String("suffix"), e.principal)
	if err != nil {
		return err
	}
	fmt.Printf("token %d\n", id)
	return nil
}

func mintDirectCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.registry.Mint(c.String("account"), c.Uint64("id"), c.Uint64("amount"), nil, e.principal)
}

func transferCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.registry.SafeTransferFrom(e.principal, c.String("from"), c.String("to"), c.Uint64("id"), c.Uint64("amount"))
}

func listTokensCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	for _, t := range e.registry.ListTokens() {
		fmt.Printf("%d\t%d\t%s\t%s\n", t.ID, t.CollectionID, t.CID, t.URI)
	}
	return nil
}

func historyCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	recs, err := e.registry.History(c.Uint64("id"))
	if err != nil {
		return err
	}
	for _, rec := range recs {
		from, to := rec.From, rec.To
		if from == registry.ZeroAccount {
			from = "-"
		}
		if to == registry.ZeroAccount {
			to = "-"
		}
		fmt.Printf("%d\t%s\t%s -> %s\t%d\n", rec.Seq, rec.Timestamp.Format("2006-01-02T15:04:05"), from, to, rec.Amount)
	}
	return nil
}

func balanceCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Println(e.registry.BalanceOf(c.String("account"), c.Uint64("id")))
	return nil
}

func storeDataCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.registry.StoreData(c.String("value"), e.principal)
}

func deleteDataCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.registry.DeleteData(c.String("value"), e.principal)
}

func listDataCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	for _, v := range e.registry.ListData() {
		fmt.Println(v)
	}
	return nil
}

func pauseCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.registry.Pause(e.principal)
}

func resumeCmd(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.registry.Resume(e.principal)
}
