package main

import (
	"context"
	"fmt"

	"github.com/mycitadel/citadel-wallet/internal/core/application"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var idFlag = &cli.StringFlag{
	Name:     "id",
	Usage:    "the id of the wallet",
	Required: true,
}

var txidFlag = &cli.StringFlag{
	Name:     "txid",
	Usage:    "the unsigned txid of the pending transaction",
	Required: true,
}

var create = cli.Command{
	Name:   "create",
	Usage:  "create a new wallet for the given descriptor",
	Flags:  descriptorFlags,
	Action: createAction,
}

var list = cli.Command{
	Name:   "list",
	Usage:  "list all wallets",
	Action: listAction,
}

var show = cli.Command{
	Name:   "show",
	Usage:  "show descriptor, balance and transactions of a wallet",
	Flags:  []cli.Flag{idFlag},
	Action: showAction,
}

var setdescriptor = cli.Command{
	Name: "set-descriptor",
	Usage: "replace the descriptor of a wallet. If it changes, the wallet " +
		"history and pending transactions are dropped",
	Flags:  append([]cli.Flag{idFlag}, descriptorFlags...),
	Action: setDescriptorAction,
}

var addpsbt = cli.Command{
	Name:  "add-psbt",
	Usage: "add base64 encoded psbts to the history of a wallet",
	Flags: []cli.Flag{
		idFlag,
		&cli.StringSliceFlag{
			Name:     "psbt",
			Usage:    "a base64 encoded psbt, repeat the flag to add many",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "wip",
			Usage: "add the psbt to the pending transactions instead",
			Value: false,
		},
	},
	Action: addPsbtAction,
}

var confirm = cli.Command{
	Name:   "confirm",
	Usage:  "move a pending transaction to the wallet history",
	Flags:  []cli.Flag{idFlag, txidFlag},
	Action: confirmAction,
}

var discard = cli.Command{
	Name:   "discard",
	Usage:  "drop a pending transaction",
	Flags:  []cli.Flag{idFlag, txidFlag},
	Action: discardAction,
}

var closewallet = cli.Command{
	Name:   "close",
	Usage:  "close a wallet and remove it from the store",
	Flags:  []cli.Flag{idFlag},
	Action: closeAction,
}

func createAction(ctx *cli.Context) error {
	descriptor, err := parseDescriptor(ctx)
	if err != nil {
		return err
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	id, err := svc.CreateWallet(context.Background(), descriptor)
	if err != nil {
		return err
	}

	printJSON(map[string]string{
		"id":              id,
		"descriptor_hash": descriptor.Hash().String(),
	})
	return nil
}

func listAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	wallets, err := svc.ListWallets(context.Background())
	if err != nil {
		return err
	}

	views := make([]walletSummary, 0, len(wallets))
	for _, w := range wallets {
		views = append(views, newWalletSummary(w))
	}
	printJSON(views)
	return nil
}

func showAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	id := ctx.String("id")
	w, err := svc.GetWallet(context.Background(), id)
	if err != nil {
		return err
	}

	printJSON(newWalletDetails(id, w))
	return nil
}

func setDescriptorAction(ctx *cli.Context) error {
	descriptor, err := parseDescriptor(ctx)
	if err != nil {
		return err
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	changed, err := svc.UpdateDescriptor(
		context.Background(), ctx.String("id"), descriptor,
	)
	if err != nil {
		return err
	}

	if !changed {
		fmt.Println("descriptor unchanged")
		return nil
	}
	fmt.Println("descriptor updated, wallet history has been reset")
	return nil
}

func addPsbtAction(ctx *cli.Context) error {
	psbts := ctx.StringSlice("psbt")
	if ctx.Bool("wip") && len(psbts) != 1 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	id := ctx.String("id")
	if ctx.Bool("wip") {
		txid, err := svc.AddPendingTransaction(context.Background(), id, psbts[0])
		if err != nil {
			return err
		}
		printJSON(map[string]string{"txid": txid})
		return nil
	}

	state, err := svc.AddTransactions(context.Background(), id, psbts...)
	if err != nil {
		return err
	}
	printJSON(newStateView(state))
	return nil
}

func confirmAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	state, err := svc.ConfirmPendingTransaction(
		context.Background(), ctx.String("id"), ctx.String("txid"),
	)
	if err != nil {
		return err
	}
	printJSON(newStateView(state))
	return nil
}

func discardAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.DiscardPendingTransaction(
		context.Background(), ctx.String("id"), ctx.String("txid"),
	); err != nil {
		return err
	}

	fmt.Println("pending transaction discarded")
	return nil
}

func closeAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.CloseWallet(context.Background(), ctx.String("id")); err != nil {
		return err
	}

	fmt.Println("wallet closed")
	return nil
}

type stateView struct {
	BalanceSats uint64 `json:"balance_sats"`
	Balance     string `json:"balance"`
}

func newStateView(state domain.WalletState) stateView {
	return stateView{
		BalanceSats: uint64(state.Balance),
		Balance:     state.Balance.String(),
	}
}

type descriptorView struct {
	Hash        string          `json:"hash"`
	Format      string          `json:"format"`
	Network     string          `json:"network"`
	AccountPath string          `json:"account_path,omitempty"`
	Signers     []domain.Signer `json:"signers"`
	Conditions  []string        `json:"conditions"`
}

func newDescriptorView(d domain.WalletDescriptor) descriptorView {
	conditions := make([]string, 0)
	for _, c := range d.Conditions() {
		conditions = append(conditions, c.String())
	}
	var accountPath string
	if purpose, ok := d.Format().Purpose(); ok {
		if path, err := purpose.AccountPath(d.Network(), 0); err == nil {
			accountPath = path.String()
		}
	}
	return descriptorView{
		Hash:        d.Hash().String(),
		Format:      d.Format().String(),
		Network:     d.Network().String(),
		AccountPath: accountPath,
		Signers:     d.Signers(),
		Conditions:  conditions,
	}
}

type walletSummary struct {
	ID         string         `json:"id"`
	Descriptor descriptorView `json:"descriptor"`
	State      stateView      `json:"state"`
	NumHistory int            `json:"num_history"`
	NumWip     int            `json:"num_wip"`
}

func newWalletSummary(info application.WalletInfo) walletSummary {
	return walletSummary{
		ID:         info.ID,
		Descriptor: newDescriptorView(info.Descriptor),
		State:      newStateView(info.State),
		NumHistory: info.NumHistory,
		NumWip:     info.NumWip,
	}
}

type walletDetails struct {
	ID         string         `json:"id"`
	Descriptor descriptorView `json:"descriptor"`
	State      stateView      `json:"state"`
	History    []string       `json:"history"`
	Wip        []string       `json:"wip"`
}

func newWalletDetails(id string, w *domain.Wallet) walletDetails {
	history := make([]string, 0)
	for _, p := range w.History() {
		history = append(history, domain.PacketTxid(p).String())
	}
	wip := make([]string, 0)
	for _, p := range w.Wip() {
		wip = append(wip, domain.PacketTxid(p).String())
	}
	return walletDetails{
		ID:         id,
		Descriptor: newDescriptorView(w.ToDescriptor()),
		State:      newStateView(w.State()),
		History:    history,
		Wip:        wip,
	}
}
