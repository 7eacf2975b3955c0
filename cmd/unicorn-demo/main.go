// Command unicorn-demo is a direct port of the reference miner-lottery's
// demo entry point: a fixed set of participant public keys and fixed VDF
// parameters, printing the selected participant. It is not part of the
// tested contract — no flags, no meaningful exit codes.
package main

import (
	"fmt"
	"log"

	"github.com/Zenotta/miner-lottery/internal/seed"
	"github.com/Zenotta/miner-lottery/internal/selection"
	"github.com/Zenotta/miner-lottery/internal/vdf"
)

func main() {
	inputs := []string{
		"AAAAC3NzaC1lZDI1NTE5AAAAIISBNp/6cz4by6FhlAtSI5Dg3agtFlOjoPayidNEDd78",
		"AAAAB3NzaC1yc2EAAAADAQABAAACAQDflRJbqp9Ru2f4oLeUjEjV7QxbtlM8DiuSmj6iWA7vv6Hb62cQeLRT3Un4yerjOOBrXd3s4psReCL4+oo3GmvOIRCPlpMqZZFPgHYyF8pGobwSZZHSKNPpIeNWM90hXenJ4zTym59W/+jU3dhe8AeaAZS0Qy09vsHr4K+7cAjsz1ebp0yKNK06Betsfis26tipf40QzWUwrn/UuUgdlpXG6H+bUNuZ2cWDVkuq4G00F7OCv3wEdtnAy8VKnpqVIWsjo7c1WWVPtlslcVv1gRbTNaZ9msyvaiQ+hUsJYo8VNmu9iONJGUa3PnkWMmy9Z4hIHPG/imtVrWr0UNCXPB1gahDUJrm22qOH0iwg7PB88X9W5ryihe7HN3Q1nVDpcLyUGoXessuFtbzugDkDkfiNkTz3AYRtikcL3F9gdpTZ0EtPuIXItplsdUi5Axng45HB3VwEcd9ehBMv0WmYzsF3pxyE5jQOscken91cdGFF0l6llhsXohZBkpvV2v+4XOM6NCsXATQVdNDpsrNIScczHKXT9J/aqO54BhrORiytPLBgJScEde65dYTbEIgvzxFJtNzHAveCN/A3L+C/TGC57lRRSsuG1bD/2S1Zy4XQHsbNWAdOaurO858ik13WC+Sn5frc81vMIZdqPU5/imgC9c2XYrcfSz82v9HnurO8nw==",
	}

	fixedParams := vdf.FixedParams{
		Modulus:    "6864797660130609714981900799081393217269435300143305409394463459185543183397656052122559640661454554977296311391480858037121987999716643812574028291115057151",
		Iterations: 1000,
		Security:   1,
	}

	s := seed.Construct(inputs)
	info := vdf.Construct(s, fixedParams)

	prn, err := selection.GetUnicornPRN(info, 0)
	if err != nil {
		log.Fatalf("unicorn-demo: %s", err)
	}

	winner := selection.PickIndex(prn, len(inputs))
	fmt.Printf("Selected: %s\n", inputs[winner])
}
