package rdf

import (
	"fmt"
	"strings"

	"github.com/ems-iodt/twinscale-api-types/things"
	"github.com/ems-iodt/twinscale/pkg/twin/names"
)

// Triple is one N-Triples statement. Object is already rendered
// (an IRI in angle brackets or a literal with quoting and datatype).
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

func iri(s string) string { return "<" + s + ">" }

func literal(s string) string { return `"` + escapeLiteral(s) + `"` }

func typedLiteral(s, datatype string) string {
	return literal(s) + "^^<" + NSXSD + datatype + ">"
}

// Serialize renders triples as an N-Triples document.
func Serialize(triples []Triple) string {
	sb := strings.Builder{}
	for _, t := range triples {
		sb.WriteString(iri(t.Subject))
		sb.WriteString(" ")
		sb.WriteString(iri(t.Predicate))
		sb.WriteString(" ")
		sb.WriteString(t.Object)
		sb.WriteString(" .\n")
	}
	return sb.String()
}

// TwinTriples builds the RDF statements of a twin: the interface with
// its properties, relationships and commands, plus the instance
// pointing back at it.
func TwinTriples(spec things.ThingSpec) []Triple {
	interfaceName := names.CanonicalName(spec.ID)
	ifaceURI := InterfaceURI(interfaceName)

	triples := []Triple{
		{ifaceURI, NSRDFType, iri(term("TwinInterface"))},
		{ifaceURI, term("name"), literal(interfaceName)},
	}

	if spec.Name != "" {
		triples = append(triples, Triple{ifaceURI, term("displayName"), literal(spec.Name)})
	}
	if spec.ThingType != "" {
		triples = append(triples, Triple{ifaceURI, term("thingType"), literal(spec.ThingType.String())})
	}
	if spec.Description != "" {
		triples = append(triples, Triple{ifaceURI, term("description"), literal(spec.Description)})
	}
	if spec.ID != "" {
		triples = append(triples, Triple{ifaceURI, term("originalId"), literal(spec.ID)})
	}
	if spec.Manufacturer != "" {
		triples = append(triples, Triple{ifaceURI, term("manufacturer"), literal(spec.Manufacturer)})
	}
	if spec.Model != "" {
		triples = append(triples, Triple{ifaceURI, term("model"), literal(spec.Model)})
	}
	if spec.SerialNumber != "" {
		triples = append(triples, Triple{ifaceURI, term("serialNumber"), literal(spec.SerialNumber)})
	}
	if spec.FirmwareVersion != "" {
		triples = append(triples, Triple{ifaceURI, term("firmwareVersion"), literal(spec.FirmwareVersion)})
	}
	if spec.DTDLInterface != nil && spec.DTDLInterface.DTMI != "" {
		triples = append(triples, Triple{ifaceURI, term("dtdlInterface"), literal(spec.DTDLInterface.DTMI)})
	}

	for _, p := range spec.Properties {
		propURI := PropertyURI(interfaceName, p.Name)
		triples = append(triples,
			Triple{propURI, NSRDFType, iri(term("Property"))},
			Triple{propURI, term("propertyName"), literal(p.Name)},
			Triple{propURI, term("propertyType"), literal(p.Schema.Type)},
		)
		if p.Description != "" {
			triples = append(triples, Triple{propURI, term("description"), literal(p.Description)})
		}
		triples = append(triples, Triple{
			propURI, term("writable"),
			typedLiteral(fmt.Sprintf("%t", p.Writable), "boolean"),
		})
		if p.Schema.Minimum != nil {
			triples = append(triples, Triple{
				propURI, term("minimum"),
				typedLiteral(fmt.Sprintf("%g", *p.Schema.Minimum), "double"),
			})
		}
		if p.Schema.Maximum != nil {
			triples = append(triples, Triple{
				propURI, term("maximum"),
				typedLiteral(fmt.Sprintf("%g", *p.Schema.Maximum), "double"),
			})
		}
		if p.Unit != "" {
			triples = append(triples, Triple{propURI, term("unit"), literal(p.Unit)})
		}
		triples = append(triples, Triple{ifaceURI, term("hasProperty"), iri(propURI)})
	}

	for _, r := range spec.Relationships {
		relURI := RelationshipURI(interfaceName, r.Name)
		triples = append(triples,
			Triple{relURI, NSRDFType, iri(term("Relationship"))},
			Triple{relURI, term("relationshipName"), literal(r.Name)},
			Triple{relURI, term("targetInterface"), literal(r.TargetInterface)},
		)
		if r.Description != "" {
			triples = append(triples, Triple{relURI, term("description"), literal(r.Description)})
		}
		triples = append(triples, Triple{ifaceURI, term("hasRelationship"), iri(relURI)})
	}

	for _, c := range spec.Commands {
		cmdURI := CommandURI(interfaceName, c.Name)
		triples = append(triples,
			Triple{cmdURI, NSRDFType, iri(term("Command"))},
			Triple{cmdURI, term("commandName"), literal(c.Name)},
		)
		if c.Description != "" {
			triples = append(triples, Triple{cmdURI, term("description"), literal(c.Description)})
		}
		triples = append(triples, Triple{ifaceURI, term("hasCommand"), iri(cmdURI)})
	}

	instURI := InstanceURI(interfaceName)
	triples = append(triples,
		Triple{instURI, NSRDFType, iri(term("TwinInstance"))},
		Triple{instURI, term("name"), literal(interfaceName)},
		Triple{instURI, term("instanceOf"), iri(ifaceURI)},
	)

	return triples
}
