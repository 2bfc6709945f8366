package quota

import "errors"

// ErrQuotaExhausted is returned when a user has no AI requests left for the current month.
var ErrQuotaExhausted = errors.New("monthly ai quota exhausted")

// DefaultMonthlyRequests is the number of AI generation requests granted per month.
const DefaultMonthlyRequests = 50
