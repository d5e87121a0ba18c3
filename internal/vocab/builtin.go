package vocab

// builtinTerms is the stock phrase dictionary shipped with the engine.
// Shops extend or override it through a vocabulary overlay file.
var builtinTerms = map[string]Target{
	// Brakes
	"brakes":           {Section: "Brakes", Item: "Front Brake Pads"},
	"brake pads":       {Section: "Brakes", Item: "Front Brake Pads"},
	"front brakes":     {Section: "Brakes", Item: "Front Brake Pads"},
	"front brake pads": {Section: "Brakes", Item: "Front Brake Pads"},
	"rear brakes":      {Section: "Brakes", Item: "Rear Brake Pads"},
	"rear brake pads":  {Section: "Brakes", Item: "Rear Brake Pads"},
	"rotors":           {Section: "Brakes", Item: "Front Rotors"},
	"front rotors":     {Section: "Brakes", Item: "Front Rotors"},
	"rear rotors":      {Section: "Brakes", Item: "Rear Rotors"},
	"brake fluid":      {Section: "Brakes", Item: "Brake Fluid"},

	// Tires
	"tires":               {Section: "Tires", Item: "Front Tires"},
	"front tires":         {Section: "Tires", Item: "Front Tires"},
	"rear tires":          {Section: "Tires", Item: "Rear Tires"},
	"tire pressure":       {Section: "Tires", Item: "Tire Pressure"},
	"front tire pressure": {Section: "Tires", Item: "Front Tire Pressure"},
	"rear tire pressure":  {Section: "Tires", Item: "Rear Tire Pressure"},
	"tread":               {Section: "Tires", Item: "Front Tires"},
	"spare":               {Section: "Tires", Item: "Spare Tire"},
	"spare tire":          {Section: "Tires", Item: "Spare Tire"},

	// Under hood
	"oil":               {Section: "Under Hood", Item: "Engine Oil"},
	"engine oil":        {Section: "Under Hood", Item: "Engine Oil"},
	"coolant":           {Section: "Under Hood", Item: "Coolant"},
	"antifreeze":        {Section: "Under Hood", Item: "Coolant"},
	"battery":           {Section: "Under Hood", Item: "Battery"},
	"belts":             {Section: "Under Hood", Item: "Drive Belts"},
	"drive belts":       {Section: "Under Hood", Item: "Drive Belts"},
	"hoses":             {Section: "Under Hood", Item: "Hoses"},
	"air filter":        {Section: "Under Hood", Item: "Engine Air Filter"},
	"engine air filter": {Section: "Under Hood", Item: "Engine Air Filter"},

	// HVAC / interior
	"cabin filter":     {Section: "HVAC", Item: "Cabin Air Filter"},
	"cabin air filter": {Section: "HVAC", Item: "Cabin Air Filter"},
	"ac":               {Section: "HVAC", Item: "A/C Performance"},
	"air conditioning": {Section: "HVAC", Item: "A/C Performance"},
	"heater":           {Section: "HVAC", Item: "Heater Performance"},

	// Exterior
	"wipers":       {Section: "Exterior", Item: "Wiper Blades"},
	"wiper blades": {Section: "Exterior", Item: "Wiper Blades"},
	"headlights":   {Section: "Exterior", Item: "Headlights"},
	"tail lights":  {Section: "Exterior", Item: "Tail Lights"},
	"taillights":   {Section: "Exterior", Item: "Tail Lights"},
	"turn signals": {Section: "Exterior", Item: "Turn Signals"},
	"washer fluid": {Section: "Exterior", Item: "Washer Fluid"},

	// Suspension / steering
	"shocks":      {Section: "Suspension", Item: "Shocks"},
	"struts":      {Section: "Suspension", Item: "Struts"},
	"alignment":   {Section: "Suspension", Item: "Alignment"},
	"ball joints": {Section: "Suspension", Item: "Ball Joints"},
	"tie rods":    {Section: "Suspension", Item: "Tie Rods"},
}
