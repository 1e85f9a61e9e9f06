package main

import (
	"net/http"

	"github.com/jlahtela/ridgeline/internal/training"
)

// exerciseInfoTemplateData contains data for the exercise info template.
type exerciseInfoTemplateData struct {
	BaseTemplateData
	Exercise training.ExerciseInfo
}

// exerciseInfoGET renders one exercise's description. Unknown ids still
// render, showing the raw id.
func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	data := exerciseInfoTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Exercise:         training.LookupExercise(r.PathValue("id")),
	}

	app.render(w, r, http.StatusOK, "exercise-info", data)
}
