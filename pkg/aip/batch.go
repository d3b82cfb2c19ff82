package aip

import "context"

// BatchError records one failed item in a batch operation.
type BatchError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BatchResult summarizes a batch operation. Items are attempted
// independently; per-item failures land in Errors and never abort the
// remaining items.
type BatchResult struct {
	Success int          `json:"success"`
	Failed  int          `json:"failed"`
	Errors  []BatchError `json:"errors,omitempty"`
}

// BatchRegister registers each profile in order, isolating per-item
// failures. It never returns an error for a partial failure; the only
// error source is a cancelled context, which stops further attempts.
func BatchRegister(ctx context.Context, client *Client, profiles []*AgentProfile) (*BatchResult, error) {
	result := &BatchResult{}
	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := client.Register(ctx, profile); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BatchError{ID: profile.ID, Error: err.Error()})
			continue
		}
		result.Success++
	}
	return result, nil
}

// BatchDelete deletes each agent id in order, isolating per-item
// failures the same way BatchRegister does.
func BatchDelete(ctx context.Context, client *Client, agentIDs []string) (*BatchResult, error) {
	result := &BatchResult{}
	for _, id := range agentIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := client.Delete(ctx, id); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BatchError{ID: id, Error: err.Error()})
			continue
		}
		result.Success++
	}
	return result, nil
}
