package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"partituras/internal/domain"
	"partituras/internal/service"
)

var (
	recommendCount     int
	recommendRequest   string
	recommendDistances bool
)

func init() {
	recommendCmd.Flags().IntVarP(&recommendCount, "count", "n", service.DefaultCount, "Number of recommendations (defaults to recommend.default_count from config)")
	recommendCmd.Flags().StringVar(&recommendRequest, "request", "", `JSON request {"id_cancion": ..., "num_recomendaciones": ...}; "-" reads stdin`)
	recommendCmd.Flags().BoolVar(&recommendDistances, "distances", false, "Include the Manhattan distance of each result")
	rootCmd.AddCommand(recommendCmd)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [id]",
	Short: "Recommend scores similar to the given one",
	Long: `Recommend the scores closest to a reference score, nearest first.
The reference score itself is never part of the result.

Examples:
  partituras recommend 42
  partituras recommend 42 -n 10 --distances
  echo '{"id_cancion": 42}' | partituras recommend --request -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}
	engine, _, err := state.loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	return recommend(cmd.OutOrStdout(), engine, req, recommendDistances, humanOutput)
}

// buildRequest assembles the request from --request or the positional id.
func buildRequest(cmd *cobra.Command, args []string) (domain.RecommendRequest, error) {
	if recommendRequest != "" {
		if len(args) > 0 {
			return domain.RecommendRequest{}, withCode(ExitBadRequest, fmt.Errorf("use either an id argument or --request, not both"))
		}
		var data []byte
		var err error
		if recommendRequest == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data = []byte(recommendRequest)
		}
		if err != nil {
			return domain.RecommendRequest{}, fmt.Errorf("reading request: %w", err)
		}
		return parseRequest(data)
	}

	var req domain.RecommendRequest
	if len(args) == 1 {
		id, err := parseID(args[0])
		if err != nil {
			return req, err
		}
		req.SongID = &id
	}
	count := recommendCount
	if !cmd.Flags().Changed("count") && state.cfg != nil {
		count = state.cfg.Recommend.DefaultCount
	}
	req.Count = &count
	return req, nil
}

// parseRequest decodes a wire request.
func parseRequest(data []byte) (domain.RecommendRequest, error) {
	var req domain.RecommendRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return req, withCode(ExitBadRequest, fmt.Errorf("invalid request: %w", err))
	}
	return req, nil
}

func recommend(w io.Writer, engine *service.Engine, req domain.RecommendRequest, distances, human bool) error {
	if req.SongID == nil {
		return domain.ErrMissingID
	}
	count := service.DefaultCount
	if req.Count != nil {
		count = *req.Count
	}

	if !distances && !human {
		docs, err := engine.Handle(req)
		if err != nil {
			return err
		}
		return outputJSON(w, docs)
	}

	scored, err := engine.Similar(*req.SongID, count)
	if err != nil {
		return err
	}
	if human {
		for i, s := range scored {
			fmt.Fprintf(w, "%2d. %-6d %-*s  %-20s  %.4f\n", i+1, s.Document.ID,
				ListTitleMaxLen, truncate(s.Document.Title, ListTitleMaxLen), s.Document.Author, s.Distance)
		}
		if len(scored) == 0 {
			fmt.Fprintln(w, "No recommendations.")
		}
		return nil
	}
	out := make([]ScoredResponse, len(scored))
	for i, s := range scored {
		out[i] = ScoredResponse{Document: s.Document, Distance: s.Distance}
	}
	return outputJSON(w, out)
}

