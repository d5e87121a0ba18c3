package app

import "inspectbot/internal/model"

// defaultSections is the stock multi-point inspection template used when
// no document file is supplied. Section and item names line up with the
// built-in vocabulary dictionary.
func defaultSections() []model.Section {
	return []model.Section{
		{
			Title: "Brakes",
			Items: []model.Item{
				{Label: "Front Brake Pads"},
				{Label: "Rear Brake Pads"},
				{Label: "Front Rotors"},
				{Label: "Rear Rotors"},
				{Label: "Brake Fluid"},
			},
		},
		{
			Title: "Tires",
			Items: []model.Item{
				{Label: "Front Tires"},
				{Label: "Rear Tires"},
				{Label: "Front Tire Pressure"},
				{Label: "Rear Tire Pressure"},
				{Label: "Spare Tire"},
			},
		},
		{
			Title: "Under Hood",
			Items: []model.Item{
				{Label: "Engine Oil"},
				{Label: "Coolant"},
				{Label: "Battery"},
				{Label: "Drive Belts"},
				{Label: "Hoses"},
				{Label: "Engine Air Filter"},
			},
		},
		{
			Title: "HVAC",
			Items: []model.Item{
				{Label: "Cabin Air Filter"},
				{Label: "A/C Performance"},
				{Label: "Heater Performance"},
			},
		},
		{
			Title: "Exterior",
			Items: []model.Item{
				{Label: "Wiper Blades"},
				{Label: "Headlights"},
				{Label: "Tail Lights"},
				{Label: "Turn Signals"},
				{Label: "Washer Fluid"},
			},
		},
		{
			Title: "Suspension",
			Items: []model.Item{
				{Label: "Shocks"},
				{Label: "Struts"},
				{Label: "Ball Joints"},
				{Label: "Tie Rods"},
				{Label: "Alignment"},
			},
		},
	}
}
