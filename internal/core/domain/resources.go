package domain

type ResourceType string

// TrackedResourceTypes is the fixed reference set for the AU eRequesting
// audit. Classification of corpus filenames walks this slice in order, so
// ordering is load-bearing: Practitioner sits before PractitionerRole and
// Communication before CommunicationRequest (see MatchPolicy in the audit
// package for the consequences).
var TrackedResourceTypes = []ResourceType{
	"Patient",
	"Practitioner",
	"PractitionerRole",
	"Organization",
	"HealthcareService",
	"ServiceRequest",
	"Task",
	"Coverage",
	"Encounter",
	"Communication",
	"CommunicationRequest",
	"Consent",
	"Observation",
	"Specimen",
	"DocumentReference",
	"DiagnosticReport",
}

func (rt ResourceType) String() string {
	return string(rt)
}
