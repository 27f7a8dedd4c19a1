// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package variants

// knownInstitution is a canonical name and the other names it goes by.
type knownInstitution struct {
	Canonical string
	Aliases   []string
}

// knownInstitutions is the static canonical/abbreviation table. Aliases must
// be unambiguous on their own: a bare "Penn" or "UC" would pull in unrelated
// institutions.
var knownInstitutions = []knownInstitution{
	{"Massachusetts Institute of Technology", []string{"MIT"}},
	{"California Institute of Technology", []string{"Caltech"}},
	{"Carnegie Mellon University", []string{"CMU", "Carnegie Mellon"}},
	{"Georgia Institute of Technology", []string{"Georgia Tech", "GaTech"}},
	{"University of California, Los Angeles", []string{"UCLA", "UC Los Angeles"}},
	{"University of California, Berkeley", []string{"UC Berkeley"}},
	{"University of California, San Diego", []string{"UCSD", "UC San Diego"}},
	{"University of California, Irvine", []string{"UCI", "UC Irvine"}},
	{"University of California, Davis", []string{"UC Davis"}},
	{"University of California, Santa Barbara", []string{"UCSB", "UC Santa Barbara"}},
	{"University of Colorado Boulder", []string{"CU Boulder", "University of Colorado at Boulder", "UColorado Boulder"}},
	{"University of Illinois Urbana-Champaign", []string{"UIUC", "University of Illinois at Urbana-Champaign"}},
	{"University of Texas at Austin", []string{"UT Austin", "UT-Austin"}},
	{"University of Michigan", []string{"UMich", "University of Michigan-Ann Arbor"}},
	{"University of Wisconsin-Madison", []string{"UW-Madison", "UW Madison"}},
	{"University of Washington", []string{"UW Seattle"}},
	{"University of Southern California", []string{"USC"}},
	{"University of Pennsylvania", []string{"UPenn"}},
	{"Pennsylvania State University", []string{"Penn State", "Penn State University Park"}},
	{"Virginia Polytechnic Institute and State University", []string{"Virginia Tech"}},
	{"Rensselaer Polytechnic Institute", []string{"RPI"}},
	{"New York University", []string{"NYU"}},
	{"Ohio State University", []string{"The Ohio State University"}},
	{"Purdue University", []string{"Purdue University West Lafayette"}},
	{"Texas A&M University", []string{"TAMU", "Texas A&M"}},
	{"Stony Brook University", []string{"SUNY Stony Brook", "State University of New York at Stony Brook"}},
	{"University at Buffalo", []string{"SUNY Buffalo", "State University of New York at Buffalo"}},
	{"Johns Hopkins University", []string{"JHU"}},
	{"San Diego Supercomputer Center", []string{"SDSC"}},
	{"Texas Advanced Computing Center", []string{"TACC"}},
	{"Pittsburgh Supercomputing Center", []string{"PSC"}},
	{"National Center for Supercomputing Applications", []string{"NCSA"}},
	{"National Center for Atmospheric Research", []string{"NCAR"}},
}
