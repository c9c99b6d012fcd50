package sample

import "github.com/jsphweid/eartrain/model"

func noteFiles(notes ...string) map[string]string {
	res := make(map[string]string, len(notes))
	for _, n := range notes {
		res[n] = n + ".mp3"
	}
	return res
}

var builtin = map[string]model.InstrumentManifest{
	"piano": {
		Program: 0,
		Notes:   noteFiles("A1", "A2", "A3", "A4", "A5", "A6", "C2", "C3", "C4", "C5", "C6", "C7"),
	},
	"xylophone": {
		Program: 13,
		Notes:   noteFiles("C5", "C6", "C7", "G4", "G5", "G6"),
	},
	"organ": {
		Program: 19,
		Notes:   noteFiles("A1", "A2", "A3", "A4", "A5", "C2", "C3", "C4", "C5", "C6"),
	},
	"harmonium": {
		Program: 20,
		Notes:   noteFiles("A2", "A3", "A4", "C2", "C3", "C4", "C5", "E2", "E3", "E4"),
	},
	"guitar-nylon": {
		Program: 24,
		Notes:   noteFiles("A2", "A3", "A4", "B1", "B2", "B3", "D3", "D4", "E2", "E3", "E4"),
	},
	"guitar-acoustic": {
		Program: 25,
		Notes:   noteFiles("A2", "A3", "A4", "C3", "C4", "C5", "E2", "E3", "E4", "G2", "G3", "G4"),
	},
	"guitar-electric": {
		Program: 27,
		Notes:   noteFiles("A2", "A3", "A4", "A5", "C3", "C4", "C5", "C6", "E2"),
	},
	"bass-electric": {
		Program: 33,
		Notes:   noteFiles("A1", "A2", "A3", "A4", "C2", "C3", "C4", "E1", "E2", "E3", "G1", "G2", "G3"),
	},
	"violin": {
		Program: 40,
		Notes:   noteFiles("A3", "A4", "A5", "A6", "C4", "C5", "C6", "C7", "E4", "E5", "E6", "G3", "G4", "G5", "G6"),
	},
	"cello": {
		Program: 42,
		Notes:   noteFiles("A2", "A3", "A4", "C2", "C3", "C4", "C5", "E2", "E3", "E4", "G2", "G3", "G4"),
	},
	"contrabass": {
		Program: 43,
		Notes:   noteFiles("A1", "A2", "B2", "C2", "D2", "E2", "G1", "G2"),
	},
	"harp": {
		Program: 46,
		Notes:   noteFiles("A2", "A4", "A6", "B1", "B3", "B5", "C3", "C5", "D2", "D4", "D6", "E1", "E3", "E5", "F2", "F4", "F6", "G1", "G3", "G5"),
	},
	"trumpet": {
		Program: 56,
		Notes:   noteFiles("A3", "A5", "C4", "C6", "D5", "F3", "F4", "F5", "G4"),
	},
	"trombone": {
		Program: 57,
		Notes:   noteFiles("A2", "A3", "C3", "C4", "D3", "D4", "F2", "F3", "F4"),
	},
	"tuba": {
		Program: 58,
		Notes:   noteFiles("A1", "A2", "D2", "D3", "D4", "F1", "F2", "F3"),
	},
	"french-horn": {
		Program: 60,
		Notes:   noteFiles("A1", "A3", "C2", "C4", "D3", "D5", "F3", "F5", "G2"),
	},
	"saxophone": {
		Program: 65,
		Notes:   noteFiles("A4", "A5", "C4", "C5", "D3", "D4", "D5", "E3", "E4", "E5", "F3", "F4", "F5", "G3", "G4", "G5"),
	},
	"bassoon": {
		Program: 70,
		Notes:   noteFiles("A2", "A3", "A4", "C3", "C4", "C5", "E4", "G2", "G3", "G4"),
	},
	"clarinet": {
		Program: 71,
		Notes:   noteFiles("A5", "D3", "D4", "D5", "D6", "F3", "F4", "F5", "F6"),
	},
	"flute": {
		Program: 73,
		Notes:   noteFiles("A4", "A5", "A6", "C4", "C5", "C6", "C7", "E4", "E5", "E6"),
	},
}
