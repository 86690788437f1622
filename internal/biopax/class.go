// internal/biopax/class.go
package biopax

import "strings"

// Class identifies the BioPAX type of an element. Classes form a single
// inheritance tree which IsA walks.
type Class int

const (
	ClassUnknown Class = iota
	ClassEntityReference
	ClassSequenceEntityReference
	ClassProteinReference
	ClassDnaReference
	ClassRnaReference
	ClassSmallMoleculeReference
	ClassPhysicalEntity
	ClassSequenceEntity
	ClassProtein
	ClassDna
	ClassRna
	ClassSmallMolecule
	ClassComplex
	ClassInteraction
	ClassConversion
	ClassBiochemicalReaction
	ClassComplexAssembly
	ClassTransport
	ClassTransportWithBiochemicalReaction
	ClassDegradation
	ClassControl
	ClassCatalysis
	ClassModulation
	ClassTemplateReactionRegulation
	ClassTemplateReaction
	ClassMolecularInteraction
	ClassPathway
)

var classParents = map[Class]Class{
	ClassSequenceEntityReference:          ClassEntityReference,
	ClassProteinReference:                 ClassSequenceEntityReference,
	ClassDnaReference:                     ClassSequenceEntityReference,
	ClassRnaReference:                     ClassSequenceEntityReference,
	ClassSmallMoleculeReference:           ClassEntityReference,
	ClassSequenceEntity:                   ClassPhysicalEntity,
	ClassProtein:                          ClassSequenceEntity,
	ClassDna:                              ClassSequenceEntity,
	ClassRna:                              ClassSequenceEntity,
	ClassSmallMolecule:                    ClassPhysicalEntity,
	ClassComplex:                          ClassPhysicalEntity,
	ClassConversion:                       ClassInteraction,
	ClassBiochemicalReaction:              ClassConversion,
	ClassComplexAssembly:                  ClassConversion,
	ClassTransport:                        ClassConversion,
	ClassTransportWithBiochemicalReaction: ClassBiochemicalReaction,
	ClassDegradation:                      ClassConversion,
	ClassControl:                          ClassInteraction,
	ClassCatalysis:                        ClassControl,
	ClassModulation:                       ClassControl,
	ClassTemplateReactionRegulation:       ClassControl,
	ClassTemplateReaction:                 ClassInteraction,
	ClassMolecularInteraction:             ClassInteraction,
}

var classNames = map[Class]string{
	ClassUnknown:                          "Unknown",
	ClassEntityReference:                  "EntityReference",
	ClassSequenceEntityReference:          "SequenceEntityReference",
	ClassProteinReference:                 "ProteinReference",
	ClassDnaReference:                     "DnaReference",
	ClassRnaReference:                     "RnaReference",
	ClassSmallMoleculeReference:           "SmallMoleculeReference",
	ClassPhysicalEntity:                   "PhysicalEntity",
	ClassSequenceEntity:                   "SequenceEntity",
	ClassProtein:                          "Protein",
	ClassDna:                              "Dna",
	ClassRna:                              "Rna",
	ClassSmallMolecule:                    "SmallMolecule",
	ClassComplex:                          "Complex",
	ClassInteraction:                      "Interaction",
	ClassConversion:                       "Conversion",
	ClassBiochemicalReaction:              "BiochemicalReaction",
	ClassComplexAssembly:                  "ComplexAssembly",
	ClassTransport:                        "Transport",
	ClassTransportWithBiochemicalReaction: "TransportWithBiochemicalReaction",
	ClassDegradation:                      "Degradation",
	ClassControl:                          "Control",
	ClassCatalysis:                        "Catalysis",
	ClassModulation:                       "Modulation",
	ClassTemplateReactionRegulation:       "TemplateReactionRegulation",
	ClassTemplateReaction:                 "TemplateReaction",
	ClassMolecularInteraction:             "MolecularInteraction",
	ClassPathway:                          "Pathway",
}

var classByName = func() map[string]Class {
	m := make(map[string]Class, len(classNames))
	for c, n := range classNames {
		m[strings.ToLower(n)] = c
	}
	return m
}()

// String returns the BioPAX local name of the class.
func (c Class) String() string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return classNames[ClassUnknown]
}

// IsA reports whether c equals super or descends from it.
func (c Class) IsA(super Class) bool {
	for cur := c; ; {
		if cur == super {
			return true
		}
		parent, ok := classParents[cur]
		if !ok {
			return false
		}
		cur = parent
	}
}

// ParseClass resolves a BioPAX local name, case-insensitively. Unknown names
// yield ClassUnknown.
func ParseClass(name string) Class {
	if c, ok := classByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return ClassUnknown
}

// Classes returns every concrete class known to the model, parents included.
func Classes() []Class {
	out := make([]Class, 0, len(classNames)-1)
	for c := ClassEntityReference; c <= ClassPathway; c++ {
		out = append(out, c)
	}
	return out
}
