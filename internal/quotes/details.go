package quotes

import (
	"fmt"
	"strings"
)

// serviceLabels maps flags to the Title-cased labels used in audit rows and
// emails, in display order.
func serviceLabels(selection ServiceSelection) []string {
	var labels []string
	if selection.Repair {
		labels = append(labels, "Repair")
	}
	if selection.Consulting {
		labels = append(labels, "Consulting")
	}
	if selection.ReverseEngineering {
		labels = append(labels, "Reverse Engineering")
	}
	if selection.Rebuild {
		labels = append(labels, "Rebuild")
	}
	return labels
}

// BuildDetails flattens the type-specific payload into the human-readable
// string stored on the audit row.
func BuildDetails(req QuoteRequest) string {
	if req.QuoteType == QuoteTypeServices {
		return strings.Join(serviceLabels(req.Services), ", ") + "\n" + strings.TrimSpace(req.ServiceDescription)
	}

	lines := make([]string, 0, len(req.Products))
	for i, item := range req.Products {
		line := fmt.Sprintf("%d. %s (SKU: %s) - Qty: %d", i+1, item.Name, item.OEMSku, item.Quantity)
		if item.Description != "" {
			line += " - " + item.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
