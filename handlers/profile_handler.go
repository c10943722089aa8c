package handlers

import (
	"strconv"

	"github.com/educat/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UpdateTeacherProfileRequest struct {
	Education       *string   `json:"education" validate:"omitempty,max=512"`
	ExperienceYears *int      `json:"experience_years"`
	HourlyRate      *float64  `json:"hourly_rate"`
	SubjectIDs      *[]string `json:"subject_ids" validate:"omitempty,dive,uuid"`
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	profile, err := h.Profiles.Get(c.UserContext(), claims.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(profile)
}

func (h *Handler) UpdateTeacherProfile(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req UpdateTeacherProfileRequest
	if err := parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	in := services.UpdateTeacherProfileInput{
		Education:       req.Education,
		ExperienceYears: req.ExperienceYears,
		HourlyRate:      req.HourlyRate,
	}
	if req.SubjectIDs != nil {
		ids := make([]uuid.UUID, 0, len(*req.SubjectIDs))
		for _, raw := range *req.SubjectIDs {
			ids = append(ids, uuid.MustParse(raw))
		}
		in.SubjectIDs = &ids
	}

	profile, err := h.Profiles.UpdateTeacherProfile(c.UserContext(), claims.UserID, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(profile)
}

// SearchTeachers filters teachers by the optional subject_id, min_price,
// max_price, min_experience and min_rating query parameters.
func (h *Handler) SearchTeachers(c *fiber.Ctx) error {
	var filter services.TeacherFilter
	if raw := c.Query("subject_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return h.fail(c, invalidInput("invalid subject_id"))
		}
		filter.SubjectID = &id
	}
	for _, p := range []struct {
		name string
		dst  **float64
	}{{"min_price", &filter.MinPrice}, {"max_price", &filter.MaxPrice}, {"min_rating", &filter.MinRating}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return h.fail(c, invalidInput(p.name+" must be a number"))
		}
		*p.dst = &v
	}
	if raw := c.Query("min_experience"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return h.fail(c, invalidInput("min_experience must be an integer"))
		}
		filter.MinExperience = &v
	}

	profiles, err := h.Profiles.SearchTeachers(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(profiles))
}
