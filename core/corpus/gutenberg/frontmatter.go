package gutenberg

import (
	"strings"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
)

const titlePage = `THE BOOK OF MORMON

An Account Written

BY THE HAND OF MORMON

UPON PLATES

TAKEN FROM THE PLATES OF NEPHI


Wherefore, it is an abridgment of the record of the people of
Nephi, and also of the Lamanites--Written to the Lamanites, who
are a remnant of the house of Israel; and also to Jew and
Gentile--Written by way of commandment, and also by the spirit of
prophecy and of revelation--Written and sealed up, and hid up
unto the Lord, that they might not be destroyed--To come forth by
the gift and power of God unto the interpretation thereof--Sealed
by the hand of Moroni, and hid up unto the Lord, to come forth in
due time by way of the Gentile--The interpretation thereof by the
gift of God.

An abridgment taken from the Book of Ether also, which is a
record of the people of Jared, who were scattered at the time the
Lord confounded the language of the people, when they were
building a tower to get to heaven--Which is to show unto the
remnant of the House of Israel what great things the Lord hath
done for their fathers; and that they may know the covenants of
the Lord, that they are not cast off forever--And also to the
convincing of the Jew and Gentile that JESUS is the CHRIST, the
ETERNAL GOD, manifesting himself unto all nations--And now, if
there are faults they are the mistakes of men; wherefore, condemn
not the things of God, that ye may be found spotless at the
judgment-seat of Christ.

TRANSLATED BY JOSEPH SMITH, JUN.`

const threeWitnessesTitle = "THE TESTIMONY OF THREE WITNESSES"

const threeWitnessesText = `Be it known unto all nations, kindreds, tongues, and people, unto
whom this work shall come: That we, through the grace of God the
Father, and our Lord Jesus Christ, have seen the plates which
contain this record, which is a record of the people of Nephi,
and also of the Lamanites, their brethren, and also of the people
of Jared, who came from the tower of which hath been spoken. And
we also know that they have been translated by the gift and power
of God, for his voice hath declared it unto us; wherefore we know
of a surety that the work is true. And we also testify that we
have seen the engravings which are upon the plates; and they have
been shown unto us by the power of God, and not of man. And we
declare with words of soberness, that an angel of God came down
from heaven, and he brought and laid before our eyes, that we
beheld and saw the plates, and the engravings thereon; and we
know that it is by the grace of God the Father, and our Lord
Jesus Christ, that we beheld and bear record that these things
are true. And it is marvelous in our eyes. Nevertheless, the
voice of the Lord commanded us that we should bear record of it;
wherefore, to be obedient unto the commandments of God, we bear
testimony of these things. And we know that if we are faithful
in Christ, we shall rid our garments of the blood of all men, and
be found spotless before the judgment-seat of Christ, and shall
dwell with him eternally in the heavens. And the honor be to the
Father, and to the Son, and to the Holy Ghost, which is one God.
Amen.`

const threeWitnessesSignatures = `OLIVER COWDERY
DAVID WHITMER
MARTIN HARRIS`

const eightWitnessesTitle = "THE TESTIMONY OF EIGHT WITNESSES"

const eightWitnessesText = `Be it known unto all nations, kindreds, tongues, and people, unto
whom this work shall come: That Joseph Smith, Jun., the
translator of this work, has shown unto us the plates of which
hath been spoken, which have the appearance of gold; and as many
of the leaves as the said Smith has translated we did handle with
our hands; and we also saw the engravings thereon, all of which
has the appearance of ancient work, and of curious workmanship.
And this we bear record with words of soberness, that the said
Smith has shown unto us, for we have seen and hefted, and know of
a surety that the said Smith has got the plates of which we have
spoken. And we give our names unto the world, to witness unto
the world that which we have seen. And we lie not, God bearing
witness of it.`

const eightWitnessesSignatures = `CHRISTIAN WHITMER
JACOB WHITMER
PETER WHITMER, JUN.
JOHN WHITMER
HIRAM PAGE
JOSEPH SMITH, SEN.
HYRUM SMITH
SAMUEL H. SMITH`

// FrontMatter returns the front matter of the Gutenberg English edition.
func FrontMatter() corpus.FrontMatter {
	return corpus.FrontMatter{
		Title:       "The Book of Mormon",
		Subtitle:    "Another Testament of Jesus Christ",
		Translator:  "Joseph Smith, Jr.",
		LastUpdated: "February 1, 2013",
		Language:    "en",
		TitlePage:   titlePage,
		Testimonies: []corpus.Testimony{
			{
				Title:     threeWitnessesTitle,
				Text:      threeWitnessesText,
				Witnesses: strings.Split(threeWitnessesSignatures, "\n"),
			},
			{
				Title:     eightWitnessesTitle,
				Text:      eightWitnessesText,
				Witnesses: strings.Split(eightWitnessesSignatures, "\n"),
			},
		},
	}
}
