package domain

// ProfileCheck names one canonical StructureDefinition whose active version
// is audited against the expected IG release.
type ProfileCheck struct {
	Name         string
	CanonicalURL string
}

const ereqProfileBase = "http://hl7.org.au/fhir/ereq/StructureDefinition/"

// DefaultProfileChecks lists the AU eRequesting profiles the audit tracks.
var DefaultProfileChecks = []ProfileCheck{
	{Name: "Patient", CanonicalURL: ereqProfileBase + "au-erequesting-patient"},
	{Name: "ServiceRequest", CanonicalURL: ereqProfileBase + "au-erequesting-servicerequest-imag"},
	{Name: "Task", CanonicalURL: ereqProfileBase + "au-erequesting-task"},
	{Name: "TaskGroup", CanonicalURL: ereqProfileBase + "au-erequesting-task-group"},
	{Name: "Practitioner", CanonicalURL: ereqProfileBase + "au-erequesting-practitioner"},
	{Name: "PractitionerRole", CanonicalURL: ereqProfileBase + "au-erequesting-practitionerrole"},
	{Name: "Organization", CanonicalURL: ereqProfileBase + "au-erequesting-organization"},
	{Name: "Coverage", CanonicalURL: ereqProfileBase + "au-erequesting-coverage"},
	{Name: "CommunicationRequest", CanonicalURL: ereqProfileBase + "au-erequesting-communicationrequest-copyto"},
}
