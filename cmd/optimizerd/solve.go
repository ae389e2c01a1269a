package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/coldchain/dispatch-optimizer/internal/inventory"
	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/coldchain/dispatch-optimizer/internal/optimizer"
	"github.com/coldchain/dispatch-optimizer/internal/synth"
	applogger "github.com/coldchain/dispatch-optimizer/pkg/logger"
	"github.com/spf13/cobra"
)

// batchFile is the on-disk shape accepted by `optimizerd solve --file`: the
// same fields POST /optimize accepts, collected into one JSON document for
// offline/batch runs.
type batchFile struct {
	DispatchRequests      []model.DispatchRequest      `json:"dispatchRequests"`
	ReplenishmentRequests []model.ReplenishmentRequest `json:"replenishmentRequests"`
	Facilities            []model.Facility              `json:"allFacilities"`
	Products              []model.Product                `json:"productCatalog"`
	Vehicles              []model.Vehicle                `json:"availableVehicles"`
}

func newSolveCommand() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run one optimize pass over a JSON batch file and print the bids",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(filePath)
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "path to a JSON batch file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runSolve(filePath string) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading batch file: %w", err)
	}

	var batch batchFile
	if err := json.Unmarshal(raw, &batch); err != nil {
		return fmt.Errorf("parsing batch file: %w", err)
	}

	appLogger := applogger.New()
	httpClient := &http.Client{Timeout: time.Duration(getEnvInt("WAREHOUSE_TIMEOUT_SECONDS", 10)) * time.Second}
	oracle := inventory.NewHTTPOracle(getEnv("API_SERVER_URL", "http://localhost:8080"), getEnv("AGENT_API_TOKEN", ""), httpClient, appLogger)

	synthesizer := synth.New(oracle, appLogger)
	opt := optimizer.New(synthesizer, nil, appLogger)

	bids, err := opt.Run(context.Background(), optimizer.Request{
		DispatchRequests:      batch.DispatchRequests,
		ReplenishmentRequests: batch.ReplenishmentRequests,
		Facilities:            batch.Facilities,
		Products:              batch.Products,
		Vehicles:              batch.Vehicles,
	})
	if err != nil {
		return fmt.Errorf("running optimizer: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(bids)
}
