package public

import (
	"errors"
	"net/http"

	"github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/common"
	partnerapp "github.com/ncd-navigator/resource-mobilization/api/internal/partner/application"
)

// mappingSubmitHandler validates and persists a partner-mapping submission.
// A payload with zero entries is rejected with a field error before any
// document is written.
func (h *Handler) mappingSubmitHandler(finalize bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.Result{Success: false, Message: "Authentication required"})
			return
		}

		var req submitMappingRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: err.Error()})
			return
		}
		if fieldErrs := common.ValidateStruct(req); fieldErrs != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, submitMappingResponse{Success: false, Errors: fieldErrs})
			return
		}

		cmd := buildMappingCommand(user.ID, req)
		var (
			id  string
			err error
		)
		if finalize {
			id, err = h.mappingCommands.Finalize(r.Context(), cmd)
		} else {
			id, err = h.mappingCommands.Submit(r.Context(), cmd)
		}
		if err != nil {
			if errors.Is(err, partnerapp.ErrAuthenticationRequired) {
				common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.Result{Success: false, Message: "Authentication required"})
				return
			}
			if id != "" {
				h.logger.Printf("partner mapping finalize left draft behind for user %s: %v", user.ID, err)
				common.WriteJSON(h.logger, w, http.StatusOK, submitMappingResponse{
					Success:   true,
					MappingID: id,
					Message:   "Partner mappings submitted, but the draft could not be discarded",
				})
				return
			}
			h.logger.Printf("partner mapping submission failed for user %s: %v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, submitMappingResponse{Success: false, Message: "Failed to submit partner mappings"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, submitMappingResponse{Success: true, MappingID: id})
	}
}

// mappingListHandler returns the submitting user's own finalized records.
func (h *Handler) mappingListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.Result{Success: false, Message: "Authentication required"})
			return
		}

		records, err := h.mappingCommands.ListForUser(r.Context(), user.ID)
		if err != nil {
			h.logger.Printf("partner mapping listing failed for user %s: %v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to list partner mappings"})
			return
		}

		responses := make([]mappingRecordResponse, 0, len(records))
		for _, record := range records {
			responses = append(responses, mapMappingRecord(record))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"success":     true,
			"submissions": responses,
		})
	}
}

func buildMappingCommand(userID string, req submitMappingRequest) partnerapp.SubmitMappingCommand {
	entries := make([]partnerapp.EntryInput, 0, len(req.PartnerMappings))
	for _, e := range req.PartnerMappings {
		entries = append(entries, partnerapp.EntryInput{
			Year:         e.Year,
			WorkNature:   e.WorkNature,
			Organization: e.Organization,
			ProjectName:  e.ProjectName,
			Region:       e.Region,
			District:     e.District,
			Disease:      e.Disease,
			PartnerName:  e.PartnerName,
			PartnerRole:  e.PartnerRole,
		})
	}
	return partnerapp.SubmitMappingCommand{UserID: userID, Entries: entries}
}
