package advocate

// fallback is the built-in dataset used when no durable store is reachable.
var fallback = []Advocate{
	{ID: 1, FirstName: "John", LastName: "Doe", City: "New York", Degree: "MD", Specialties: []string{"Bipolar", "LGBTQ", "Medication/Prescribing"}, YearsOfExperience: 10, PhoneNumber: "5551234567"},
	{ID: 2, FirstName: "Jane", LastName: "Smith", City: "Los Angeles", Degree: "PhD", Specialties: []string{"Trauma & PTSD", "Personality disorders", "Relationship issues (family, friends, couple, etc)"}, YearsOfExperience: 8, PhoneNumber: "5559876543"},
	{ID: 3, FirstName: "Alice", LastName: "Johnson", City: "Chicago", Degree: "MSW", Specialties: []string{"Pediatrics", "Attention and Hyperactivity (ADHD)", "Life coaching"}, YearsOfExperience: 5, PhoneNumber: "5554567890"},
	{ID: 4, FirstName: "Michael", LastName: "Brown", City: "Houston", Degree: "MD", Specialties: []string{"Diabetic Diet and nutrition", "Weight loss & nutrition", "Chronic pain"}, YearsOfExperience: 12, PhoneNumber: "5556543210"},
	{ID: 5, FirstName: "Emily", LastName: "Davis", City: "Phoenix", Degree: "PhD", Specialties: []string{"Sleep issues", "Eating disorders", "Women's issues (post-partum, infertility, family planning)"}, YearsOfExperience: 7, PhoneNumber: "5553210987"},
	{ID: 6, FirstName: "Chris", LastName: "Martinez", City: "Philadelphia", Degree: "MSW", Specialties: []string{"Substance use/abuse", "Suicide History/Attempts", "General Mental Health (anxiety, depression, stress, grief, life transitions)"}, YearsOfExperience: 9, PhoneNumber: "5557890123"},
	{ID: 7, FirstName: "Jessica", LastName: "Taylor", City: "San Antonio", Degree: "MD", Specialties: []string{"Cardiology", "Chronic pain", "Medication/Prescribing"}, YearsOfExperience: 11, PhoneNumber: "5554561234"},
	{ID: 8, FirstName: "David", LastName: "Harris", City: "San Diego", Degree: "PhD", Specialties: []string{"Men's issues", "Anger management", "Coaching (leadership, career, academic and wellness)"}, YearsOfExperience: 6, PhoneNumber: "5557896543"},
	{ID: 9, FirstName: "Laura", LastName: "Clark", City: "Dallas", Degree: "MSW", Specialties: []string{"Domestic abuse", "Trauma & PTSD", "Relationship issues (family, friends, couple, etc)"}, YearsOfExperience: 4, PhoneNumber: "5550123456"},
	{ID: 10, FirstName: "Daniel", LastName: "Lewis", City: "San Jose", Degree: "MD", Specialties: []string{"Autism", "Pediatrics", "Neurology"}, YearsOfExperience: 13, PhoneNumber: "5553217654"},
	{ID: 11, FirstName: "Sarah", LastName: "Lee", City: "Austin", Degree: "PhD", Specialties: []string{"Obsessive-compulsive disorders", "Anxiety", "Schizophrenia and psychotic disorders"}, YearsOfExperience: 10, PhoneNumber: "5551238765"},
	{ID: 12, FirstName: "James", LastName: "King", City: "Jacksonville", Degree: "MSW", Specialties: []string{"Geriatrics", "Dementia care", "Grief"}, YearsOfExperience: 5, PhoneNumber: "5556540987"},
	{ID: 13, FirstName: "Megan", LastName: "Green", City: "San Francisco", Degree: "MD", Specialties: []string{"Oncology", "Palliative care", "Chronic illness"}, YearsOfExperience: 14, PhoneNumber: "5559873456"},
	{ID: 14, FirstName: "Joshua", LastName: "Walker", City: "Columbus", Degree: "PhD", Specialties: []string{"Sleep issues", "Stress management", "Life coaching"}, YearsOfExperience: 9, PhoneNumber: "5556781234"},
	{ID: 15, FirstName: "Amanda", LastName: "Hall", City: "Fort Worth", Degree: "MSW", Specialties: []string{"LGBTQ", "Gender identity", "Life transitions"}, YearsOfExperience: 3, PhoneNumber: "5559872345"},
}

// Fallback returns a copy of the built-in dataset.
func Fallback() []Advocate {
	out := make([]Advocate, len(fallback))
	for i, a := range fallback {
		a.Specialties = append([]string(nil), a.Specialties...)
		out[i] = a
	}
	return out
}
