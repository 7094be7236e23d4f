package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"influence/internal/game"
)

func main() {
	asJSON := flag.Bool("json", false, "print the action catalog as JSON")
	flag.Parse()

	if *asJSON {
		if err := writeCatalogJSON(os.Stdout); err != nil {
			fmt.Printf("Error encoding catalog: %v\n", err)
			os.Exit(1)
		}
		return
	}
	writeRulesInfo(os.Stdout, game.DefaultRules())
}

func writeCatalogJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(game.Catalog())
}

// writeRulesInfo prints the action reference card and the deck sizes per player count
func writeRulesInfo(w io.Writer, rules game.Rules) {
	fmt.Fprintln(w, "Influence Rules Reference")
	fmt.Fprintln(w, "=========================")
	fmt.Fprintln(w)

	for _, info := range game.Catalog() {
		claim := "-"
		if info.Role != "" {
			claim = string(info.Role)
		}
		blockers := "-"
		if info.Blockable() {
			names := make([]string, len(info.BlockableBy))
			for i, r := range info.BlockableBy {
				names[i] = string(r)
			}
			blockers = strings.Join(names, ", ")
		}
		fmt.Fprintf(w, "%-12s claim: %-11s blocked by: %-20s %s\n", info.Action, claim, blockers, info.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Players: %d-%d, starting coins: %d, must coup at %d coins\n",
		rules.MinPlayers, rules.MaxPlayers, rules.StartingCoins, rules.MustCoupAt)
	for n := rules.MinPlayers; n <= rules.MaxPlayers; n++ {
		copies := rules.CopiesPerRole(n)
		fmt.Fprintf(w, "- %d players: %d copies of each role, %d cards in the court deck\n",
			n, copies, copies*len(game.AllRoles)-2*n)
	}
}
