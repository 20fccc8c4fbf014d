package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParametersVoids struct {
	Title      string   `yaml:"Title"`
	InputFile  string   `yaml:"InputFile"`
	OutputFile string   `yaml:"OutputFile"`
	BoxMin     float64  `yaml:"BoxMin"`
	BoxMax     *float64 `yaml:"BoxMax"` // Periodic mode when set
	Margin     float64  `yaml:"Margin"` // Width of the periodic cover, 0 = box size
	Precision  int      `yaml:"Precision"`
}

func (ip *InputParametersVoids) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersVoids) Periodic() bool { return ip.BoxMax != nil }

func (ip *InputParametersVoids) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Input File\n", ip.InputFile)
	fmt.Printf("[%s]\t\t= Output File\n", ip.OutputFile)
	if ip.Periodic() {
		fmt.Printf("[%g, %g]\t\t= Periodic Box\n", ip.BoxMin, *ip.BoxMax)
		fmt.Printf("%8.5f\t\t= Margin\n", ip.Margin)
	} else {
		fmt.Printf("[none]\t\t\t= Periodic Box\n")
	}
	fmt.Printf("[%d]\t\t\t= Precision\n", ip.Precision)
}

// Example is a sample parameter file.
const Example = `
########################################
Title: "Millennium halos"
InputFile: halos.txt
OutputFile: voids.txt
BoxMin: 0.
BoxMax: 500.   # Omit for a non periodic catalog
Margin: 0.     # Width of the periodic cover, 0 = box size
Precision: 10
########################################
`
