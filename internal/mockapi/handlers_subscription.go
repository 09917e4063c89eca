package mockapi

import (
	"fmt"
	"net/http"

	"github.com/taskbench/taskbench-go/internal/api"
)

// SubscriptionStatus handles GET subscription/status/.
func (s *Server) SubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}
	user, ok := s.store.UserByID(userID)
	if !ok {
		unauthorized(w, "unknown account")
		return
	}

	resp := api.SubscriptionStatusResponse{UserID: userID}
	if sub := user.Subscription; sub != nil && sub.Active {
		resp.IsSubscribed = true
		nextPayment := sub.NextPayment.Format(wireTimeLayout)
		resp.NextPayment = &nextPayment
		active := sub.Active
		resp.IsActive = &active
		id := sub.ID
		resp.SubscriptionID = &id
	}
	writeJSON(w, http.StatusOK, resp)
}

// ActivateSubscription handles POST subscription/manage/. The mock skips the
// payment provider round trip and activates immediately, but still returns a
// confirmation URL so clients exercise their redirect path.
func (s *Server) ActivateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}

	sub, err := s.store.ActivateSubscription(userID)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	confirmationURL := fmt.Sprintf("https://payment.example.com/confirm/%d", sub.ID)
	paymentID := sub.ID
	writeJSON(w, http.StatusOK, api.SubscriptionActivateResponse{
		ConfirmationURL:   &confirmationURL,
		YookassaPaymentID: &paymentID,
		SubscriptionID:    sub.ID,
	})
}

// DeactivateSubscription handles DELETE subscription/manage/.
func (s *Server) DeactivateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}
	if err := s.store.DeactivateSubscription(userID); err != nil {
		badRequest(w, err.Error())
		return
	}
	noContent(w)
}
