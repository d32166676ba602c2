package rdf

import (
	"regexp"
	"strings"
)

// Vocabulary of the twin ontology.
//
// Classes: TwinInterface, TwinInstance, Property, Relationship, Command,
// InstanceRelationship. Predicates link interfaces to their parts
// (hasProperty, hasRelationship, hasCommand) and instances to their
// interface (instanceOf).
const (
	NSOntology = "http://twin.dtd/ontology#"
	NSData     = "http://iodt2.com/"
	NSXSD      = "http://www.w3.org/2001/XMLSchema#"
	NSRDFType  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	graphBase = "http://twin.io/graphs/"
)

func term(name string) string { return NSOntology + name }

// Tenant ids and interface names end up verbatim inside graph URIs
// and SPARQL text, so both are restricted to characters that cannot
// break out of an IRI or a query.
var (
	tenantIDPattern      = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9\-.]{0,49}$`)
	interfaceNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// ValidTenantID reports whether tenantID is safe to address graphs
// with. The empty id is valid and falls back to the default tenant.
func ValidTenantID(tenantID string) bool {
	return tenantID == "" || tenantIDPattern.MatchString(tenantID)
}

// ValidInterfaceName reports whether name is a canonical slug.
func ValidInterfaceName(name string) bool {
	return interfaceNamePattern.MatchString(name)
}

// GraphURI names the graph a twin is stored in. One graph per twin,
// segmented by tenant.
func GraphURI(tenantID, thingID string) string {
	if tenantID == "" {
		tenantID = "default"
	}
	return graphBase + tenantID + "/" + thingID
}

// TenantGraphPrefix is the common prefix of all graphs of a tenant.
func TenantGraphPrefix(tenantID string) string {
	if tenantID == "" {
		tenantID = "default"
	}
	return graphBase + tenantID + "/"
}

func InterfaceURI(interfaceName string) string {
	return NSData + interfaceName
}

func InstanceURI(instanceName string) string {
	return NSData + "instance/" + instanceName
}

func PropertyURI(interfaceName, propertyName string) string {
	return NSData + interfaceName + "/property/" + propertyName
}

func RelationshipURI(interfaceName, relationshipName string) string {
	return NSData + interfaceName + "/relationship/" + relationshipName
}

func CommandURI(interfaceName, commandName string) string {
	return NSData + interfaceName + "/command/" + commandName
}

// escapeLiteral escapes a string for use inside an N-Triples literal.
func escapeLiteral(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}
