package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Philanthropists/outcome/internal/bank/banktypes"
	"github.com/Philanthropists/outcome/internal/store/outcomes"
)

func main() {
	table := flag.String("table", outcomes.DefaultTable, "DynamoDB table to read from")
	region := flag.String("region", "us-east-1", "AWS region of the table")
	flag.Parse()

	ctx := context.Background()
	client, err := outcomes.NewDynamoDBClient(ctx, *region)
	if err != nil {
		panic(err)
	}

	store := &outcomes.Store[*banktypes.TrxInfo]{
		Client: client,
		Table:  *table,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, id := range flag.Args() {
		rec, err := store.Get(ctx, id)
		if outcomes.ErrNotFound.Has(err) {
			fmt.Fprintf(os.Stderr, "%s: not found in table %s\n", id, *table)
			continue
		}
		if err != nil {
			panic(err)
		}

		if err := enc.Encode(rec); err != nil {
			panic(err)
		}
	}
}
