package detector

import (
	"fmt"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
)

// ComponentAccess reports every risky operation found in a ui component file
func ComponentAccess(ctx *Context, operations []Operation) ([]issue.Issue, error) {
	if ctx.File.Category() != source.UIComponent {
		return nil, nil
	}
	var result []issue.Issue
	for _, operation := range operations {
		created, err := ctx.Create(issue.Spec{
			Type:           issue.Architectural,
			Severity:       issue.High,
			Node:           operation.Call,
			Description:    fmt.Sprintf("Direct %v access in component. Components should not directly call '%v'; this violates separation of concerns and makes testing difficult.", ctx.Domain.Name, operation.Verb),
			Recommendation: "Move the operations to a service layer or API route. Components should fetch data through API calls or server-side data fetching patterns.",
			Effort:         issue.EffortMedium,
			Tags:           ctx.tags("architecture", "separation-of-concerns"),
		})
		if err != nil {
			return result, err
		}
		result = append(result, *created)
	}
	return result, nil
}

// ServiceLayer reports an endpoint file with more risky operations than the service layer limit, anchored at the first one
func ServiceLayer(ctx *Context, operations []Operation) (*issue.Issue, error) {
	if ctx.File.Category() != source.Endpoint || len(operations) <= ctx.Thresholds.ServiceLayerLimit {
		return nil, nil
	}
	return ctx.Create(issue.Spec{
		Type:           issue.Architectural,
		Severity:       issue.Medium,
		Node:           operations[0].Call,
		Description:    fmt.Sprintf("API route contains %v %v operations. Complex logic should be abstracted into a service layer for better maintainability and testability.", len(operations), ctx.Domain.Name),
		Recommendation: "Extract the operations into a dedicated service module. This improves code organization, makes testing easier, and allows reuse across multiple API routes.",
		Effort:         issue.EffortMedium,
		Tags:           ctx.tags("architecture", "service-layer"),
	})
}
