package public

import (
	"errors"
	"net/http"

	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	"github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/common"
	surveyapp "github.com/ncd-navigator/resource-mobilization/api/internal/survey/application"
)

// loadDraftHandler returns the user's in-progress draft for one form family.
// An absent draft is a success-shaped response, not an HTTP error.
func (h *Handler) loadDraftHandler(service drafts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.Result{Success: false, Message: "Authentication required"})
			return
		}

		draft, err := service.Load(r.Context(), user.ID)
		if errors.Is(err, drafts.ErrNotFound) {
			common.WriteJSON(h.logger, w, http.StatusOK, draftResponse{Success: false, Message: "No draft found"})
			return
		}
		if err != nil {
			h.logger.Printf("draft load failed for user %s: %v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to load draft"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, draftResponse{Success: true, Draft: mapDraftPayload(draft)})
	}
}

// saveDraftHandler upserts the user's draft. Safe to call repeatedly; the
// last write wins on the single per-user document.
func (h *Handler) saveDraftHandler(service drafts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.Result{Success: false, Message: "Authentication required"})
			return
		}

		var req saveDraftRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: err.Error()})
			return
		}

		draft, err := service.Save(r.Context(), user.ID, req.FormData, req.CurrentStep)
		if err != nil {
			h.logger.Printf("draft save failed for user %s: %v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to save draft"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, draftResponse{Success: true, Draft: mapDraftPayload(draft)})
	}
}

// discardDraftHandler removes the user's draft. Discarding a non-existent
// draft succeeds.
func (h *Handler) discardDraftHandler(service drafts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.Result{Success: false, Message: "Authentication required"})
			return
		}

		if err := service.Discard(r.Context(), user.ID); err != nil {
			h.logger.Printf("draft discard failed for user %s: %v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to discard draft"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.Result{Success: true, Message: "Draft discarded"})
	}
}

// surveySubmitHandler validates and persists a completed survey. With
// finalize set, the user's draft is discarded after a successful insert.
func (h *Handler) surveySubmitHandler(finalize bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.Result{Success: false, Message: "Authentication required"})
			return
		}

		var req submitSurveyRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: err.Error()})
			return
		}
		if fieldErrs := common.ValidateStruct(req); fieldErrs != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, submitSurveyResponse{Success: false, Errors: fieldErrs})
			return
		}

		cmd := buildSurveyCommand(user, req)
		var (
			id  string
			err error
		)
		if finalize {
			id, err = h.surveyCommands.Finalize(r.Context(), cmd)
		} else {
			id, err = h.surveyCommands.Submit(r.Context(), cmd)
		}
		if err != nil {
			if errors.Is(err, surveyapp.ErrAuthenticationRequired) {
				common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.Result{Success: false, Message: "Authentication required"})
				return
			}
			if id != "" {
				// Finalize inserted the record but the draft discard failed.
				// The submission stands; the orphaned draft is reported.
				h.logger.Printf("survey finalize left draft behind for user %s: %v", user.ID, err)
				common.WriteJSON(h.logger, w, http.StatusOK, submitSurveyResponse{
					Success:  true,
					SurveyID: id,
					Message:  "Survey submitted, but the draft could not be discarded",
				})
				return
			}
			h.logger.Printf("survey submission failed for user %s: %v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, submitSurveyResponse{Success: false, Message: "Failed to submit survey"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, submitSurveyResponse{Success: true, SurveyID: id})
	}
}

func buildSurveyCommand(user common.AuthenticatedUser, req submitSurveyRequest) surveyapp.SubmitSurveyCommand {
	activities := make(map[string]surveyapp.ActivityInput, len(req.ProjectActivities.NCDActivities))
	for name, activity := range req.ProjectActivities.NCDActivities {
		activities[name] = surveyapp.ActivityInput{
			Description:      activity.Description,
			TargetPopulation: activity.TargetPopulation,
			Coverage:         activity.Coverage,
		}
	}
	return surveyapp.SubmitSurveyCommand{
		UserID:          user.ID,
		UserDisplayName: user.Name,
		Organisation: surveyapp.OrganisationInput{
			Name:          req.OrganisationInfo.OrganisationName,
			Region:        req.OrganisationInfo.Region,
			Sector:        req.OrganisationInfo.Sector,
			ContactPerson: req.OrganisationInfo.ContactPerson,
			ContactEmail:  req.OrganisationInfo.ContactEmail,
			ContactPhone:  req.OrganisationInfo.ContactPhone,
		},
		Project: surveyapp.ProjectInput{
			Name:            req.ProjectInfo.ProjectName,
			Description:     req.ProjectInfo.Description,
			StartDate:       parseDate(req.ProjectInfo.StartDate),
			EndDate:         parseDate(req.ProjectInfo.EndDate),
			TargetedNCDs:    req.ProjectInfo.TargetedNCDs,
			FundingSource:   req.ProjectInfo.FundingSource,
			NCDSpecificInfo: req.ProjectInfo.NCDSpecificInfo,
		},
		Activities: activities,
	}
}
