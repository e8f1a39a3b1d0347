package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/01moynul/pedidos-portal/internal/apiclient"
	"github.com/01moynul/pedidos-portal/internal/auth"
	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/orders"
	"github.com/01moynul/pedidos-portal/internal/views"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var tokenFlag = &cli.StringFlag{
	Name:     "token",
	Aliases:  []string{"t"},
	Usage:    "bearer credential issued by the store",
	EnvVars:  []string{"PORTAL_TOKEN"},
	Required: true,
}

//
// --- Support Commands ---
//

func ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "list orders from the API, as the token's user or as administrator",
		Flags: []cli.Flag{
			apiFlag,
			logLevelFlag,
			tokenFlag,
			&cli.BoolFlag{Name: "admin", Usage: "use the administrator listing"},
		},
		Action: listOrders,
	}
}

func listOrders(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	client := apiclient.New(cfg.APIBaseURL, apiclient.Options{Timeout: cfg.HTTPTimeout})
	token := c.String("token")

	// 1. --- Fetch ---
	var list []models.Order
	if c.Bool("admin") {
		list, err = client.ListAllOrders(c.Context, token)
	} else {
		claims, cerr := auth.DecodeClaims(token)
		if cerr != nil {
			return errors.Wrap(cerr, orders.MsgTokenInvalid)
		}
		list, err = client.ListUserOrders(c.Context, token, claims.UserID)
	}
	if err != nil {
		return errors.New(apiclient.MessageOf(err, orders.MsgListFailed))
	}

	// 2. --- Print ---
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTOTAL\tESTADO\tPAGO")
	for _, o := range list {
		row := views.NewCustomerRow(o)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.ID, row.Total, row.Status, views.Capitalize(string(o.PaymentStatus())))
	}
	if c.Bool("admin") {
		fmt.Fprintf(tw, "\npendientes: %d\n", orders.PendingCount(list))
	}
	return tw.Flush()
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:   "token",
		Usage:  "show the user id and expiry carried by a credential",
		Flags:  []cli.Flag{tokenFlag},
		Action: showToken,
	}
}

func showToken(c *cli.Context) error {
	claims, err := auth.DecodeClaims(c.String("token"))
	if err != nil {
		return errors.Wrap(err, orders.MsgTokenInvalid)
	}

	fmt.Printf("idUsuario: %d\n", claims.UserID)
	if claims.ExpiresAt.IsZero() {
		fmt.Println("exp: sin vencimiento")
		return nil
	}
	fmt.Printf("exp: %s (%s)\n", claims.ExpiresAt.Format(time.RFC3339), time.Until(claims.ExpiresAt).Round(time.Second))
	return nil
}
