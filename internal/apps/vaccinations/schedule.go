package vaccinations

// ScheduledVaccine is one entry of the recommended immunization schedule.
type ScheduledVaccine struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
}

type ScheduleStage struct {
	Age         string             `json:"age"`
	AgeInMonths float64            `json:"ageInMonths"`
	Vaccines    []ScheduledVaccine `json:"vaccines"`
}

// RecommendedSchedule follows the WHO/CDC childhood immunization schedule.
var RecommendedSchedule = []ScheduleStage{
	{Age: "Birth", AgeInMonths: 0, Vaccines: []ScheduledVaccine{
		{"BCG", "Bacillus Calmette-Guérin"},
		{"Hepatitis B", "Hepatitis B (1st dose)"},
		{"OPV 0", "Oral Polio Vaccine (Birth dose)"},
	}},
	{Age: "6 Weeks", AgeInMonths: 1.5, Vaccines: []ScheduledVaccine{
		{"DTaP 1", "Diphtheria, Tetanus, Pertussis (1st dose)"},
		{"IPV 1", "Inactivated Polio Vaccine (1st dose)"},
		{"Hib 1", "Haemophilus influenzae type b (1st dose)"},
		{"PCV 1", "Pneumococcal Conjugate (1st dose)"},
		{"Rotavirus 1", "Rotavirus (1st dose)"},
	}},
	{Age: "10 Weeks", AgeInMonths: 2.5, Vaccines: []ScheduledVaccine{
		{"DTaP 2", "Diphtheria, Tetanus, Pertussis (2nd dose)"},
		{"IPV 2", "Inactivated Polio Vaccine (2nd dose)"},
		{"Hib 2", "Haemophilus influenzae type b (2nd dose)"},
		{"PCV 2", "Pneumococcal Conjugate (2nd dose)"},
		{"Rotavirus 2", "Rotavirus (2nd dose)"},
	}},
	{Age: "14 Weeks", AgeInMonths: 3.5, Vaccines: []ScheduledVaccine{
		{"DTaP 3", "Diphtheria, Tetanus, Pertussis (3rd dose)"},
		{"IPV 3", "Inactivated Polio Vaccine (3rd dose)"},
		{"Hib 3", "Haemophilus influenzae type b (3rd dose)"},
		{"PCV 3", "Pneumococcal Conjugate (3rd dose)"},
		{"Rotavirus 3", "Rotavirus (3rd dose)"},
	}},
	{Age: "6 Months", AgeInMonths: 6, Vaccines: []ScheduledVaccine{
		{"Hepatitis B 2", "Hepatitis B (2nd dose)"},
		{"Influenza", "Seasonal Flu Vaccine"},
	}},
	{Age: "9 Months", AgeInMonths: 9, Vaccines: []ScheduledVaccine{
		{"Measles 1", "Measles (1st dose)"},
		{"Yellow Fever", "Yellow Fever"},
	}},
	{Age: "12 Months", AgeInMonths: 12, Vaccines: []ScheduledVaccine{
		{"Hepatitis A 1", "Hepatitis A (1st dose)"},
		{"Varicella", "Chickenpox"},
	}},
	{Age: "15 Months", AgeInMonths: 15, Vaccines: []ScheduledVaccine{
		{"MMR", "Measles, Mumps, Rubella"},
		{"PCV Booster", "Pneumococcal Conjugate Booster"},
	}},
	{Age: "18 Months", AgeInMonths: 18, Vaccines: []ScheduledVaccine{
		{"DTaP Booster", "Diphtheria, Tetanus, Pertussis Booster"},
		{"IPV Booster", "Polio Booster"},
		{"Hepatitis A 2", "Hepatitis A (2nd dose)"},
	}},
	{Age: "4-6 Years", AgeInMonths: 48, Vaccines: []ScheduledVaccine{
		{"DTaP Booster", "Diphtheria, Tetanus, Pertussis Booster"},
		{"IPV Booster", "Polio Booster"},
		{"MMR Booster", "Measles, Mumps, Rubella Booster"},
	}},
}
